package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore is the local-disk content-addressed store used when no
// object storage is configured: one file per unique photo, named by its
// content address.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// PutBlobIfAbsent writes data to dir/name unless that file already
// exists. Returns true when this call created the file.
func (s *FileStore) PutBlobIfAbsent(_ context.Context, name string, data []byte) (bool, error) {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
