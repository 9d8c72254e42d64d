package modeling

import (
	"fmt"
	"io"
	"strings"
)

// NodeInfo is a flat, printable record of one node, as produced by Snapshot.
type NodeInfo struct {
	Path      string `json:"path" yaml:"path"`
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	Depth     int    `json:"depth" yaml:"depth"`
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Derived   bool   `json:"derived,omitempty" yaml:"derived,omitempty"`
}

// Snapshot lists f and its descendants depth first. Depth is relative to f.
func Snapshot(f Feature) []NodeInfo {
	s := f.Base()
	base := s.tree.depth(s.id)
	order := s.tree.preorder(s.id)
	out := make([]NodeInfo, 0, len(order))
	for _, id := range order {
		n := Subsystem{tree: s.tree, id: id}
		info := NodeInfo{
			Path:    n.Path(),
			Name:    n.Name(),
			Kind:    n.Kind().String(),
			Depth:   s.tree.depth(id) - base,
			Detail:  detail(n),
			Derived: n.Derived(),
		}
		if p := n.Placement(); p != nil {
			if !isConstant(p) {
				info.Placement = p.String()
			}
			if v, err := n.Value(); err == nil {
				info.Value = v.String()
			} else {
				info.Value = "unresolved"
			}
		}
		out = append(out, info)
	}
	return out
}

func isConstant(p Placement) bool {
	switch p.(type) {
	case featureRef, expr:
		return false
	}
	return true
}

func detail(s Subsystem) string {
	switch s.Kind() {
	case KindRigidBody, KindDeformableBody:
		if (Body{s}).IsGround() {
			return "ground"
		}
	case KindMassElement:
		return MassElement{s}.Shape().String()
	case KindJoint:
		j := Joint{s}
		if !j.Connected() {
			return j.Type().String() + " unconnected"
		}
		return fmt.Sprintf("%s %s -> %s", j.Type(), j.Reference(), j.Moving())
	case KindMultibody:
		return fmt.Sprintf("%d dof", Multibody{s}.Mobilities())
	}
	return ""
}

// Render writes an indented outline of f and its descendants, one node per line:
//
//	Kind "name" [detail] := placement = value
func Render(w io.Writer, f Feature) error {
	for _, n := range Snapshot(f) {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", n.Depth))
		fmt.Fprintf(&b, "%s %q", n.Kind, n.Name)
		if n.Detail != "" {
			fmt.Fprintf(&b, " [%s]", n.Detail)
		}
		if n.Placement != "" {
			b.WriteString(" := " + n.Placement)
		}
		if n.Value != "" {
			b.WriteString(" = " + n.Value)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
