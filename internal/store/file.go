package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileBackend keeps snapshots as JSON files next to the given path. The
// key is folded into the filename so multiple keys can share a directory.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (f *FileBackend) fileFor(key string) string {
	if key == StateKey {
		return f.Path
	}
	ext := filepath.Ext(f.Path)
	return f.Path[:len(f.Path)-len(ext)] + "-" + key + ext
}

func (f *FileBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.fileFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save writes through a temp file and renames, so a crash mid-write never
// leaves a truncated snapshot behind.
func (f *FileBackend) Save(ctx context.Context, key string, data []byte) error {
	path := f.fileFor(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *FileBackend) Clear(ctx context.Context, key string) error {
	err := os.Remove(f.fileFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileBackend) Close() {}
