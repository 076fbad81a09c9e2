package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/enhance"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func init() {
	registerSeeder(&PendingSeeder{})
}

// PendingSeeder removes every stored enhancement run.
type PendingSeeder struct{}

func (s *PendingSeeder) Name() string {
	return "pending"
}

func (s *PendingSeeder) Description() string {
	return "Discards all pending enhancement results"
}

func (s *PendingSeeder) Seed(ctx context.Context, st storage.System, cfg *config.Config, logger *slog.Logger) error {
	checkpoints := enhance.NewStorageCheckpointStore(st, logger)

	ids, err := checkpoints.List()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	for _, id := range ids {
		if err := checkpoints.Delete(id); err != nil {
			return fmt.Errorf("delete run %s: %w", id, err)
		}
	}

	logger.Info("pending runs discarded", "count", len(ids))
	return nil
}
