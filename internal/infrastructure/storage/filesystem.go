package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileSystemStore writes documents below a root directory
type FileSystemStore struct {
	root   string
	logger *zap.Logger
}

// NewFileSystemStore creates the root directory when missing
func NewFileSystemStore(root string, logger *zap.Logger) (*FileSystemStore, error) {
	if root == "" {
		root = "./data/documents"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", abs, err)
	}
	return &FileSystemStore{root: abs, logger: logger}, nil
}

// Put writes data atomically by renaming a temporary file into place
func (s *FileSystemStore) Put(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, key, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("store document: %w", err)
	}

	s.logger.Info("Document stored",
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &StoredObject{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
		URL:         full,
	}, nil
}

// Get reads a stored document
func (s *FileSystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, _, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// Delete removes a document. Missing documents are not an error.
func (s *FileSystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, key, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete document: %w", err)
	}
	s.logger.Info("Document deleted", zap.String("key", key))
	return nil
}

// Root returns the absolute storage root
func (s *FileSystemStore) Root() string {
	return s.root
}

func (s *FileSystemStore) resolve(key string) (string, string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		s.logger.Warn("Blocked document key outside storage root", zap.String("key", key))
		return "", "", ErrInvalidKey
	}
	return full, key, nil
}

var _ DocumentStore = (*FileSystemStore)(nil)
