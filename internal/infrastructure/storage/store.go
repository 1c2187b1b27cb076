// Package storage persists generated documents such as lease agreements and
// payment receipts.
package storage

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ContentTypePDF is the MIME type of rendered documents
const ContentTypePDF = "application/pdf"

var (
	// ErrInvalidKey is returned for empty, absolute or escaping keys
	ErrInvalidKey = errors.New("storage: invalid object key")
	// ErrObjectNotFound is returned when a key has no stored object
	ErrObjectNotFound = errors.New("storage: object not found")
)

// StoredObject describes a document after it was written
type StoredObject struct {
	Key         string
	Size        int64
	ContentType string
	// URL is a location the object can be read from; a presigned URL for
	// S3 or a file path for the file system store.
	URL string
}

// DocumentStore stores immutable generated documents under slash separated keys
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewDocumentStore builds the store selected by cfg.Backend
func NewDocumentStore(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (DocumentStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	switch cfg.Backend {
	case "s3":
		return NewS3DocumentStore(ctx, cfg, WithLogger(logger))
	case "", "filesystem":
		return NewFileSystemStore(cfg.BaseDir, logger)
	default:
		return nil, errors.New("storage: unknown backend " + cfg.Backend)
	}
}

// cleanKey validates a key and returns its canonical form
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	if slices.Contains(strings.Split(key, "/"), "..") {
		return "", ErrInvalidKey
	}
	return path.Clean(key), nil
}
