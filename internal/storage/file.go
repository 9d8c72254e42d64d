package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mbsim/internal/config"
	"github.com/san-kum/mbsim/internal/spatial"
)

const (
	metadataFile = "metadata.json"
	modelFile    = "model.yaml"
	bodiesFile   = "bodies.csv"
)

var bodiesHeader = []string{"name", "kind", "level", "mass", "cx", "cy", "cz", "joint", "joint_type"}

// Store keeps each model in its own directory under baseDir.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string, logger *slog.Logger) *Store {
	return &Store{baseDir: baseDir, logger: orDiscard(logger)}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Close() error { return nil }

func (s *Store) Save(cfg *config.Config, summary Summary) (string, error) {
	meta := Metadata{
		ID:        newID(),
		Name:      cfg.Name,
		Timestamp: time.Now(),
		Summary:   summary,
	}
	if err := s.write(meta, cfg); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// write stores one model. metadata.json goes last since List keys on it;
// on any failure the model's directory is removed.
func (s *Store) write(meta Metadata, cfg *config.Config) (err error) {
	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			s.logger.Warn("discarding partial model", "id", meta.ID, "err", err)
			os.RemoveAll(dir)
		}
	}()

	if err := config.Save(filepath.Join(dir, modelFile), cfg); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(dir, bodiesFile), meta.Summary.Rows); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0644); err != nil {
		return err
	}

	s.logger.Debug("saved model", "id", meta.ID, "name", meta.Name, "dir", dir)
	return nil
}

func writeRows(path string, rows []BodyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(bodiesHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			r.Kind,
			strconv.Itoa(r.Level),
			strconv.FormatFloat(r.Mass, 'f', 6, 64),
			strconv.FormatFloat(r.Centroid[0], 'f', 6, 64),
			strconv.FormatFloat(r.Centroid[1], 'f', 6, 64),
			strconv.FormatFloat(r.Centroid[2], 'f', 6, 64),
			r.Joint,
			r.JointType,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	models := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			s.logger.Debug("skipping directory", "dir", entry.Name(), "err", err)
			continue
		}

		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			s.logger.Warn("bad metadata", "dir", entry.Name(), "err", err)
			continue
		}

		models = append(models, meta)
	}

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Timestamp.Before(models[j].Timestamp)
	})
	return models, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := s.read(id, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	rows, err := s.Rows(id)
	if err != nil {
		return nil, err
	}
	meta.Summary.Rows = rows
	return &meta, nil
}

func (s *Store) LoadModel(id string) (*config.Config, error) {
	data, err := s.read(id, modelFile)
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}

func (s *Store) Rows(id string) ([]BodyRow, error) {
	data, err := s.read(id, bodiesFile)
	if err != nil {
		return nil, err
	}
	return parseRows(data)
}

func (s *Store) read(id, name string) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, err
}

func parseRows(data []byte) ([]BodyRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(bodiesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []BodyRow{}, nil
	}

	rows := make([]BodyRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		level, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("level of %s: %w", rec[0], err)
		}
		var nums [4]float64
		for i := range nums {
			if nums[i], err = strconv.ParseFloat(rec[3+i], 64); err != nil {
				return nil, fmt.Errorf("row %s: %w", rec[0], err)
			}
		}
		rows = append(rows, BodyRow{
			Name:      rec[0],
			Kind:      rec[1],
			Level:     level,
			Mass:      nums[0],
			Centroid:  spatial.Vec3{nums[1], nums[2], nums[3]},
			Joint:     rec[7],
			JointType: rec[8],
		})
	}
	return rows, nil
}
