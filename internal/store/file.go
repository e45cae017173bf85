package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps one JSON file per collection key in a single directory.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return data, nil
}

func (f *FileBackend) WriteBatch(batch map[string][]byte) error {
	for key, data := range batch {
		tmp := f.path(key) + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		if err := os.Rename(tmp, f.path(key)); err != nil {
			return fmt.Errorf("rename %s: %w", key, err)
		}
	}

	return nil
}

func (f *FileBackend) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (f *FileBackend) Ping() error {
	_, err := os.Stat(f.dir)
	return err
}

func (f *FileBackend) Close() error {
	return nil
}
