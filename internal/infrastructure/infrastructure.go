// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (lifecycle, logging, database, storage) that the
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/pkg/database"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
	"github.com/talentosprecato/Mari/pkg/logging"
	"github.com/talentosprecato/Mari/pkg/storage"
)

// Infrastructure holds the core systems required by all domain systems.
// Database is nil unless the configuration uses PostgreSQL.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, logging.New(&cfg.Logging))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
	}

	if cfg.UsesDatabase() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	store, err := storage.New(&cfg.Storage, infra.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	infra.Storage = store

	return infra, nil
}

// Start registers the infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
