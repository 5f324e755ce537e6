package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per slot under a data directory. It is the
// default backend and the closest analog to the browser-local storage the
// original demo used.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

// Get reads the slot's file, returning ErrSlotNotFound if it doesn't exist
func (f *FileStore) Get(_ context.Context, slot string) ([]byte, error) {
	data, err := os.ReadFile(f.path(slot))
	if os.IsNotExist(err) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return data, nil
}

// Put overwrites the slot's file. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated slot behind.
func (f *FileStore) Put(_ context.Context, slot string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for slot %s: %w", slot, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for slot %s: %w", slot, err)
	}
	if err := os.Rename(tmpName, f.path(slot)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace slot %s: %w", slot, err)
	}
	return nil
}

// Delete removes the slot's file. Deleting an absent slot is not an error.
func (f *FileStore) Delete(_ context.Context, slot string) error {
	err := os.Remove(f.path(slot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}
	return nil
}
