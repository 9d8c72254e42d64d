package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mbsim/internal/config"
	"github.com/san-kum/mbsim/internal/spatial"
)

func summarizePreset(t *testing.T, name string) (*config.Config, Summary) {
	t.Helper()
	cfg := config.GetPreset(name)
	require.NotNil(t, cfg, "preset %s", name)
	mb, err := config.Build(cfg)
	require.NoError(t, err)
	s, err := Summarize(mb)
	require.NoError(t, err)
	return cfg, s
}

func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"file":   New(t.TempDir(), nil),
		"sqlite": NewSQLite(t.TempDir(), nil),
	}
}

func TestBackend_SaveLoad(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Init())
			defer b.Close()

			cfg, summary := summarizePreset(t, "double_pendulum")
			id, err := b.Save(cfg, summary)
			require.NoError(t, err)
			assert.NotEmpty(t, id)

			meta, err := b.Load(id)
			require.NoError(t, err)
			assert.Equal(t, id, meta.ID)
			assert.Equal(t, "double_pendulum", meta.Name)
			assert.Equal(t, 3, meta.Summary.Bodies)
			assert.Equal(t, 2, meta.Summary.Joints)
			assert.Equal(t, 2, meta.Summary.Mobilities)
			assert.InDelta(t, 2.0, meta.Summary.TotalMass, 1e-9)
			assert.False(t, meta.Timestamp.IsZero())

			require.Len(t, meta.Summary.Rows, 3)
			assert.Equal(t, "Ground", meta.Summary.Rows[0].Name)
			assert.Empty(t, meta.Summary.Rows[0].Joint)
			assert.Equal(t, "elbow", meta.Summary.Rows[2].Joint)
			assert.Equal(t, "torsion", meta.Summary.Rows[2].JointType)
			assert.InDelta(t, -1.0, meta.Summary.Rows[2].Centroid[1], 1e-6)

			loaded, err := b.LoadModel(id)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestBackend_List(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Init())
			defer b.Close()

			models, err := b.List()
			require.NoError(t, err)
			assert.Empty(t, models)

			for _, preset := range []string{"pendulum", "cartpole", "free_body"} {
				cfg, s := summarizePreset(t, preset)
				_, err := b.Save(cfg, s)
				require.NoError(t, err)
			}

			models, err = b.List()
			require.NoError(t, err)
			require.Len(t, models, 3)
			assert.Equal(t, "pendulum", models[0].Name)
			assert.Equal(t, "free_body", models[2].Name)
		})
	}
}

func TestBackend_NotFound(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Init())
			defer b.Close()

			for _, id := range []string{"0190b5a0-0000-7000-8000-000000000000", "../etc", ""} {
				_, err := b.Load(id)
				assert.ErrorIs(t, err, ErrNotFound, "Load(%q)", id)
				_, err = b.LoadModel(id)
				assert.ErrorIs(t, err, ErrNotFound, "LoadModel(%q)", id)
			}
		})
	}
}

func TestStore_Files(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	require.NoError(t, s.Init())

	cfg, summary := summarizePreset(t, "pendulum")
	id, err := s.Save(cfg, summary)
	require.NoError(t, err)

	for _, f := range []string{metadataFile, modelFile, bodiesFile} {
		_, err := os.Stat(filepath.Join(dir, id, f))
		assert.NoError(t, err, f)
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stray"), 0755))
	models, err := s.List()
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

func TestStore_FailedSaveLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	require.NoError(t, s.Init())

	cfg, summary := summarizePreset(t, "pendulum")
	meta := Metadata{ID: newID(), Name: cfg.Name, Timestamp: time.Now(), Summary: summary}

	// a directory where bodies.csv should go makes the write fail midway
	require.NoError(t, os.MkdirAll(filepath.Join(dir, meta.ID, bodiesFile), 0755))

	require.Error(t, s.write(meta, cfg))

	_, err := os.Stat(filepath.Join(dir, meta.ID))
	assert.True(t, os.IsNotExist(err), "partial model directory should be removed")

	models, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, models)

	_, err = s.LoadModel(meta.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), nil)
	models, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	s := NewSQLite(t.TempDir(), nil)
	_, err := s.List()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.NoError(t, s.Close())
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	s := NewSQLite(dir, nil)
	require.NoError(t, s.Init())
	cfg, summary := summarizePreset(t, "gimbal_arm")
	id, err := s.Save(cfg, summary)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s = NewSQLite(dir, nil)
	require.NoError(t, s.Init())
	defer s.Close()
	meta, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "gimbal_arm", meta.Name)
	assert.Len(t, meta.Summary.Rows, 4)
}

func TestOpen(t *testing.T) {
	b, err := Open("sqlite", t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, b)
	require.NoError(t, b.Close())

	b, err = Open("", t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &Store{}, b)

	_, err = Open("postgres", t.TempDir(), nil)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	_, s := summarizePreset(t, "gimbal_arm")

	assert.Equal(t, 4, s.Bodies)
	assert.Equal(t, 3, s.Joints)
	assert.Equal(t, 6, s.Mobilities)
	assert.InDelta(t, 7.0, s.TotalMass, 1e-9)

	names := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Ground", "base", "arm", "cable"}, names)
	assert.Equal(t, "DeformableBody", s.Rows[3].Kind)
	assert.Equal(t, 3, s.Rows[3].Level)

	arm := s.Rows[2]
	assert.Equal(t, "gimbal", arm.JointType)
	assert.InDelta(t, 2.0, arm.Mass, 1e-9)
	// (0.5*0.5 + 1.5*1) / 2
	assert.InDelta(t, 0.875, arm.Centroid[0], 1e-9)
	assert.Equal(t, spatial.Vec3{}, s.Rows[0].Centroid)
}

func TestSummarize_InvalidTopology(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Joints = nil
	mb, err := config.Build(cfg)
	require.NoError(t, err)

	_, err = Summarize(mb)
	assert.Error(t, err)
}
