// Package storage provides blob storage abstractions for the signing service.
// It defines a System interface for storage operations and includes filesystem
// and MinIO implementations selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ponnanna-Pranav/SignDoc/internal/config"
)

// System defines the storage operations interface for blob storage.
// Implementations handle the underlying storage mechanism (filesystem, object
// store) while providing a consistent API for storing and retrieving binary data.
type System interface {
	// Store saves data at the specified key. If the key already exists,
	// its contents are overwritten.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Validate checks if a key exists and is accessible.
	// Returns (true, nil) if the key exists and is readable.
	// Returns (false, nil) if the key does not exist.
	Validate(ctx context.Context, key string) (bool, error)

	// Start prepares the backing store (creates the base directory or bucket).
	Start(ctx context.Context) error
}

// New creates a storage system for the configured backend.
func New(cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case config.StorageBackendFilesystem:
		return newFilesystem(cfg, logger)
	case config.StorageBackendMinio:
		return newMinio(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
