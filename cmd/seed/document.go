package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func init() {
	registerSeeder(&DocumentSeeder{})
}

// DocumentSeeder writes the CV snapshot, either the built-in sample document
// or one read from a JSON file.
type DocumentSeeder struct {
	file  string
	force bool
}

func (s *DocumentSeeder) Name() string {
	return "document"
}

func (s *DocumentSeeder) Description() string {
	return "Writes the CV snapshot from the sample document or a JSON file"
}

// SetFile configures an external snapshot file, overriding the sample document.
func (s *DocumentSeeder) SetFile(path string) {
	s.file = path
}

// SetForce allows an existing snapshot to be replaced.
func (s *DocumentSeeder) SetForce(force bool) {
	s.force = force
}

// Seed stores the document under the configured snapshot key. An existing
// snapshot is left in place unless force is set.
func (s *DocumentSeeder) Seed(ctx context.Context, st storage.System, cfg *config.Config, logger *slog.Logger) error {
	key := cfg.CV.SnapshotKey

	exists, err := st.Validate(ctx, key)
	if err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if exists && !s.force {
		logger.Info("snapshot exists, skipping", "key", key)
		return nil
	}

	doc, err := s.load()
	if err != nil {
		return err
	}

	data, err := cv.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := st.Store(ctx, key, data); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}

	logger.Info("snapshot written", "key", key, "bytes", len(data))
	return nil
}

func (s *DocumentSeeder) load() (cv.Document, error) {
	if s.file == "" {
		doc := cv.Default()
		cv.EnsureIDs(&doc)
		return doc, nil
	}

	content, err := os.ReadFile(s.file)
	if err != nil {
		return cv.Document{}, fmt.Errorf("read seed file: %w", err)
	}

	doc, err := cv.Decode(content)
	if err != nil {
		return cv.Document{}, fmt.Errorf("parse seed file: %w", err)
	}
	return doc, nil
}
