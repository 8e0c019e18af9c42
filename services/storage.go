package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists uploaded documents and returns the public URL
// they will be served under.
type FileStore interface {
	Save(name string, data []byte) (string, error)
}

// LocalFileStore writes files under Root/cv and serves them from
// BaseURL. It is the only FileStore implementation; uploads are
// buffered fully in memory before being written.
type LocalFileStore struct {
	Root    string
	BaseURL string
}

func NewLocalFileStore(root, baseURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "cv"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{Root: root, BaseURL: baseURL}, nil
}

func (s *LocalFileStore) Save(name string, data []byte) (string, error) {
	path := filepath.Join(s.Root, "cv", name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.BaseURL + "/cv/" + name, nil
}
