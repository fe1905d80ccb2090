package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploads to a directory served as static files, naming
// each file with a millisecond-timestamp prefix to avoid collisions.
type LocalStore struct {
	Dir          string // filesystem directory for uploads
	PublicPrefix string // URL prefix the directory is served under, e.g. "/uploads"
}

func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (s *LocalStore) Store(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(name))
	f, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.PublicPrefix + "/" + filename, nil
}
