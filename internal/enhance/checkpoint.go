package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentosprecato/Mari/pkg/storage"
)

const (
	checkpointPrefix = "enhance/"
	checkpointSuffix = ".json"
)

// StorageCheckpointStore implements state.CheckpointStore over the blob
// storage used for the Document snapshot. Each run is one JSON object at
// enhance/<run-id>.json.
type StorageCheckpointStore struct {
	storage storage.System
	logger  *slog.Logger
}

func NewStorageCheckpointStore(st storage.System, logger *slog.Logger) *StorageCheckpointStore {
	return &StorageCheckpointStore{
		storage: st,
		logger:  logger,
	}
}

func checkpointKey(runID string) string {
	return checkpointPrefix + runID + checkpointSuffix
}

// Save persists st under its run id, replacing any earlier checkpoint.
func (s *StorageCheckpointStore) Save(st state.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := s.storage.Store(context.Background(), checkpointKey(st.RunID), data); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint saved", "run_id", st.RunID, "node", st.CheckpointNode)
	return nil
}

// Load returns the checkpoint of runID. A missing checkpoint wraps ErrNotFound.
func (s *StorageCheckpointStore) Load(runID string) (state.State, error) {
	data, err := s.storage.Retrieve(context.Background(), checkpointKey(runID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return state.State{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return state.State{}, fmt.Errorf("load checkpoint: %w", err)
	}

	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return state.State{}, fmt.Errorf("unmarshal state: %w", err)
	}

	s.logger.Debug("checkpoint loaded", "run_id", runID)
	return st, nil
}

func (s *StorageCheckpointStore) Delete(runID string) error {
	if err := s.storage.Delete(context.Background(), checkpointKey(runID)); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint deleted", "run_id", runID)
	return nil
}

// List returns the run ids that have a checkpoint.
func (s *StorageCheckpointStore) List() ([]string, error) {
	keys, err := s.storage.List(context.Background(), checkpointPrefix)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, ok := strings.CutSuffix(strings.TrimPrefix(key, checkpointPrefix), checkpointSuffix)
		if ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
