// Package storage provides keyed blob storage for document snapshots and
// workflow checkpoints. Backends share one System contract: filesystem and
// memory for single-node use, postgres, S3-compatible object stores and Google
// Cloud Storage for shared deployments.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/talentosprecato/Mari/pkg/database"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
)

// System defines keyed blob operations. Keys are slash-separated relative paths.
type System interface {
	// Store writes data at key, replacing any previous contents.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// List returns the keys beginning with prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New builds the backend selected by cfg.Backend. db is required only by the
// postgres backend and may be nil otherwise.
func New(cfg *Config, db database.System, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "backend", cfg.Backend)

	switch cfg.Backend {
	case BackendFilesystem:
		return newFilesystem(cfg, logger)
	case BackendMemory:
		return NewMemory(), nil
	case BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres backend requires a database")
		}
		return newPostgres(db, logger), nil
	case BackendS3:
		return newS3(context.Background(), &cfg.S3, logger)
	case BackendGCS:
		return newGCS(context.Background(), &cfg.GCS, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// CleanKey normalizes key and rejects empty, absolute and traversing keys.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}

func joinPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}
