package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes files under a base directory and serves them from the
// /uploads path. Development only.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Put(_ context.Context, key, _ string, content []byte) (Ref, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Ref{}, fmt.Errorf("create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return Ref{}, fmt.Errorf("write %s: %w", key, err)
	}
	return Ref{Key: key, URL: "/uploads/" + key}, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
