package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sedama0217-sketch/PMserch/models"
)

// JSONStateStore persists the snapshot as a single JSON document. Writes go
// to a temp file in the same directory followed by a rename, so a crash
// mid-write leaves the previous snapshot intact.
type JSONStateStore struct {
	path string
}

// NewJSONStateStore creates a store rooted at path. Intermediate directories
// are created on the first Save.
func NewJSONStateStore(path string) *JSONStateStore {
	return &JSONStateStore{path: path}
}

// Load reads the last persisted snapshot. A missing file means a first run:
// an empty snapshot and no error.
func (s *JSONStateStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("state: read %q: %w", s.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("state: parse %q: %w", s.path, err)
	}
	if snap.Items == nil {
		snap.Items = make(map[string]models.ItemState)
	}
	return snap, nil
}

// Save atomically replaces the snapshot on disk.
func (s *JSONStateStore) Save(snap models.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("state: create dir %q: %w", dir, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("state: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: replace %q: %w", s.path, err)
	}
	return nil
}
