// Package export writes a model system in machine and human readable forms.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mbsim/internal/modeling"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
	FormatText Format = "text"
	FormatSVG  Format = "svg"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCBOR, FormatText, FormatSVG}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	case "text", "txt", "":
		return FormatText, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// Document is the serializable form of a system.
type Document struct {
	System      string              `json:"system" yaml:"system"`
	Multibodies []MultibodyDoc      `json:"multibodies" yaml:"multibodies"`
	Nodes       []modeling.NodeInfo `json:"nodes" yaml:"nodes"`
}

type MultibodyDoc struct {
	Name       string   `json:"name" yaml:"name"`
	Mobilities int      `json:"mobilities" yaml:"mobilities"`
	Order      []string `json:"order,omitempty" yaml:"order,omitempty"`
	Invalid    string   `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

func NewDocument(sys modeling.MultibodySystem) Document {
	doc := Document{
		System: sys.Name(),
		Nodes:  modeling.Snapshot(sys),
	}
	for _, mb := range sys.Multibodies() {
		md := MultibodyDoc{Name: mb.Name(), Mobilities: mb.Mobilities()}
		links, err := mb.Topology()
		if err != nil {
			md.Invalid = err.Error()
		}
		for _, l := range links {
			md.Order = append(md.Order, l.Body.Name())
		}
		doc.Multibodies = append(doc.Multibodies, md)
	}
	return doc
}

func Write(w io.Writer, f Format, sys modeling.MultibodySystem) error {
	switch f {
	case FormatText:
		_, err := sys.WriteTo(w)
		return err
	case FormatSVG:
		_, err := io.WriteString(w, TopologySVG(sys, 160, 60))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(sys))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(sys)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return NewEncoder(w).Encode(NewDocument(sys))
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

func WriteFile(path string, f Format, sys modeling.MultibodySystem) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, f, sys); err != nil {
		return err
	}
	return file.Close()
}

// Decode reads back a document written in one of the structured formats.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatCBOR:
		err = NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("%w: cannot decode %s", ErrUnknownFormat, f)
	}
	return doc, err
}
