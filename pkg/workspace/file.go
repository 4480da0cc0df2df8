package workspace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/texrig/texrig/pkg/errors"
)

// FileStore is a file-based workspace store for CLI use: one JSON file
// per document under baseDir.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based Store. An empty baseDir defaults to
// ~/.config/texrig/workspace/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve home directory")
		}
		baseDir = filepath.Join(home, ".config", "texrig", "workspace")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create workspace directory")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read workspace document %q", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "parse workspace document %q", id)
	}
	return &doc, nil
}

func (s *FileStore) Set(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal workspace document")
	}
	if err := os.WriteFile(s.path(doc.ID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write workspace document %q", doc.ID)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove workspace document %q", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
