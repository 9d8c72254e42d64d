package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/san-kum/mbsim/internal/config"
)

//go:embed schema.sql
var schemaSQL string

const (
	dbFile     = "mbsim.db"
	// fixed width so created_at sorts as text
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var ErrNotOpen = errors.New("storage: database not open")

// SQLiteStore keeps models and their body tables in a single database file.
type SQLiteStore struct {
	dir    string
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLite(dir string, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{dir: dir, logger: orDiscard(logger)}
}

func (s *SQLiteStore) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.dir, dbFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.logger.Debug("opened database", "path", path)
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Save(cfg *config.Config, summary Summary) (string, error) {
	if s.db == nil {
		return "", ErrNotOpen
	}
	doc, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	id := newID()
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO models (model_id, name, created_at, bodies, joints, mobilities, total_mass, model_yaml)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, cfg.Name, time.Now().UTC().Format(timeLayout),
		summary.Bodies, summary.Joints, summary.Mobilities, summary.TotalMass, string(doc),
	)
	if err != nil {
		return "", err
	}

	for i, r := range summary.Rows {
		_, err := tx.Exec(
			`INSERT INTO bodies (model_id, ordinal, name, kind, level, mass, cx, cy, cz, joint, joint_type)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.Name, r.Kind, r.Level, r.Mass,
			r.Centroid[0], r.Centroid[1], r.Centroid[2], r.Joint, r.JointType,
		)
		if err != nil {
			return "", fmt.Errorf("insert body %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	s.logger.Debug("saved model", "id", id, "name", cfg.Name, "bodies", len(summary.Rows))
	return id, nil
}

const selectModel = `SELECT model_id, name, created_at, bodies, joints, mobilities, total_mass FROM models`

func scanMetadata(row interface{ Scan(...any) error }) (Metadata, error) {
	var (
		meta    Metadata
		created string
	)
	err := row.Scan(&meta.ID, &meta.Name, &created,
		&meta.Summary.Bodies, &meta.Summary.Joints, &meta.Summary.Mobilities, &meta.Summary.TotalMass)
	if err != nil {
		return Metadata{}, err
	}
	if meta.Timestamp, err = time.Parse(timeLayout, created); err != nil {
		return Metadata{}, fmt.Errorf("created_at of %s: %w", meta.ID, err)
	}
	return meta, nil
}

func (s *SQLiteStore) List() ([]Metadata, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	rows, err := s.db.Query(selectModel + ` ORDER BY created_at, model_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	models := make([]Metadata, 0)
	for rows.Next() {
		meta, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, meta)
	}
	return models, rows.Err()
}

func (s *SQLiteStore) Load(id string) (*Metadata, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if err := validID(id); err != nil {
		return nil, err
	}

	meta, err := scanMetadata(s.db.QueryRow(selectModel+` WHERE model_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if meta.Summary.Rows, err = s.Rows(id); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *SQLiteStore) LoadModel(id string) (*config.Config, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if err := validID(id); err != nil {
		return nil, err
	}

	var doc string
	err := s.db.QueryRow(`SELECT model_yaml FROM models WHERE model_id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return config.Parse([]byte(doc))
}

func (s *SQLiteStore) Rows(id string) ([]BodyRow, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if err := validID(id); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT name, kind, level, mass, cx, cy, cz, joint, joint_type
		 FROM bodies WHERE model_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BodyRow, 0)
	for rows.Next() {
		var r BodyRow
		if err := rows.Scan(&r.Name, &r.Kind, &r.Level, &r.Mass,
			&r.Centroid[0], &r.Centroid[1], &r.Centroid[2], &r.Joint, &r.JointType); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
