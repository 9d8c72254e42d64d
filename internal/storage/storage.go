// Package storage keeps built models on disk so they can be listed,
// inspected and exported later.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mbsim/internal/config"
)

var ErrNotFound = errors.New("storage: model not found")

type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
}

// Backend stores model descriptions together with their summaries.
type Backend interface {
	Init() error
	Save(cfg *config.Config, summary Summary) (string, error)
	List() ([]Metadata, error)
	Load(id string) (*Metadata, error)
	LoadModel(id string) (*config.Config, error)
	Rows(id string) ([]BodyRow, error)
	Close() error
}

// Open returns an initialized backend of the given kind ("file" or "sqlite")
// rooted at dir.
func Open(kind, dir string, logger *slog.Logger) (Backend, error) {
	var b Backend
	switch kind {
	case "", "file":
		b = New(dir, logger)
	case "sqlite":
		b = NewSQLite(dir, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// validID rejects anything that is not one of our IDs before it is used to
// build a path or query.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
