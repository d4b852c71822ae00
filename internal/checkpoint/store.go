// Package checkpoint persists the last state message observed by the
// orchestrator so a later run can resume from it.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"e2esource/internal/protocol"
)

type Store interface {
	// Load returns the last saved checkpoint, or nil when there is none.
	Load() (*protocol.ColumnData, error)
	Save(protocol.ColumnData) error
}

// FileStore keeps the checkpoint as a JSON document, e.g. {"column1":5}.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Load() (*protocol.ColumnData, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cp, err := protocol.ParseCheckpoint(raw)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", s.Path, err)
	}
	return cp, nil
}

// Save replaces the file atomically so a crash never leaves a torn document.
func (s *FileStore) Save(cp protocol.ColumnData) error {
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
