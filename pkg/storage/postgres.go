package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talentosprecato/Mari/pkg/database"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
)

//go:embed migrations/*.sql
var migrations embed.FS

// postgres keeps each key as a row in the blobs table.
type postgres struct {
	db     database.System
	logger *slog.Logger
}

func newPostgres(db database.System, logger *slog.Logger) System {
	return &postgres{db: db, logger: logger}
}

func (p *postgres) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		if err := database.Migrate(p.db.Connection(), migrations, "migrations", "storage_schema_migrations"); err != nil {
			p.logger.Error("storage migration failed", "error", err)
			return
		}
		p.logger.Info("storage schema ready")
	})
	return nil
}

func (p *postgres) Store(ctx context.Context, key string, data []byte) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`

	if _, err := p.db.Connection().ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("store blob: %w", err)
	}
	return nil
}

func (p *postgres) Retrieve(ctx context.Context, key string) ([]byte, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}

	const query = `SELECT data FROM blobs WHERE key = $1`

	var data []byte
	if err := p.db.Connection().QueryRowContext(ctx, query, key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve blob: %w", err)
	}
	return data, nil
}

func (p *postgres) Delete(ctx context.Context, key string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}

	const query = `DELETE FROM blobs WHERE key = $1`

	if _, err := p.db.Connection().ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (p *postgres) Validate(ctx context.Context, key string) (bool, error) {
	key, err := CleanKey(key)
	if err != nil {
		return false, err
	}

	const query = `SELECT EXISTS (SELECT 1 FROM blobs WHERE key = $1)`

	var exists bool
	if err := p.db.Connection().QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("validate blob: %w", err)
	}
	return exists, nil
}

func (p *postgres) List(ctx context.Context, prefix string) ([]string, error) {
	const query = `SELECT key FROM blobs WHERE starts_with(key, $1) ORDER BY key`

	rows, err := p.db.Connection().QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan blob key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
