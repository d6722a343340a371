package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/pkg"

	log "github.com/sirupsen/logrus"
)

var _ notes.Storage = (*File)(nil)

// File keeps the notes entry as a single JSON document on disk,
// the local equivalent of the browser's key-value storage.
type File struct {
	path string
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("notes file path empty")
	}

	dir := filepath.Dir(path)
	dirExists, err := pkg.PathExists(dir, true)
	if err != nil {
		return nil, fmt.Errorf("check notes dir: %w", err)
	}
	if !dirExists {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create notes dir: %w", err)
		}
		log.Debugf("created notes dir: %s", dir)
	}

	return &File{
		path: path,
	}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Load(_ context.Context) ([]notes.Note, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("notes file [%s] not found, starting empty", f.path)
			return []notes.Note{}, nil
		}
		return nil, fmt.Errorf("read notes file: %w", err)
	}

	return notes.UnmarshalNotes(data)
}

// Save replaces the whole file. The new content is written to a temp file in
// the same dir first, so a crash mid-write never leaves a truncated entry.
func (f *File) Save(_ context.Context, list []notes.Note) error {
	data, err := notes.MarshalNotes(list)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".notes-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp notes file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp notes file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp notes file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace notes file: %w", err)
	}

	return nil
}
