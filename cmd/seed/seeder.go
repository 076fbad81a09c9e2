// Package main provides the seed command for populating storage with an
// initial CV document and for clearing stale data. Seeders can be run
// individually or together.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/pkg/storage"
)

// Seeder defines the interface for storage seeders.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed writes the seeder's data to st.
	Seed(ctx context.Context, st storage.System, cfg *config.Config, logger *slog.Logger) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// runSeeders executes the named seeders in order, stopping at the first failure.
func runSeeders(ctx context.Context, st storage.System, cfg *config.Config, logger *slog.Logger, names ...string) error {
	for _, name := range names {
		seeder, ok := getSeeder(name)
		if !ok {
			return fmt.Errorf("seeder not found: %s", name)
		}

		if err := seeder.Seed(ctx, st, cfg, logger); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		logger.Info("seeder completed", "seeder", name)
	}
	return nil
}
