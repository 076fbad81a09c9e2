// Package enhance imports an existing CV file. An upload runs through a
// read, parse, identify and preview graph; the final state is kept as a
// checkpoint until the user accepts it into the Document Store or discards it.
package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/pkg/storage"
)

// Upload is a CV file as received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pending is an enhancement awaiting acceptance.
type Pending struct {
	ID        string      `json:"id"`
	Filename  string      `json:"filename"`
	Language  string      `json:"language"`
	Document  cv.Document `json:"document"`
	Preview   string      `json:"preview"`
	CreatedAt time.Time   `json:"createdAt"`
}

// System defines the enhancement operations. A failed Start never touches the
// Document Store.
type System interface {
	Start(ctx context.Context, upload Upload, language string) (*Pending, error)
	Find(ctx context.Context, id string) (*Pending, error)

	// Accept loads the pending Document into the Document Store, keeping the
	// current section order and styles, and removes the pending enhancement.
	Accept(ctx context.Context, id string) (cv.Document, error)

	Discard(ctx context.Context, id string) error
}

type system struct {
	ai          ai.System
	doc         cv.System
	imports     *imports.Config
	checkpoints *StorageCheckpointStore
	logger      *slog.Logger
}

func New(aiSys ai.System, doc cv.System, st storage.System, cfg *imports.Config, logger *slog.Logger) System {
	logger = logger.With("system", "enhance")
	return &system{
		ai:          aiSys,
		doc:         doc,
		imports:     cfg,
		checkpoints: NewStorageCheckpointStore(st, logger),
		logger:      logger,
	}
}

func (s *system) Start(ctx context.Context, upload Upload, language string) (*Pending, error) {
	if len(upload.Data) == 0 && upload.Filename == "" {
		return nil, ErrNoFile
	}

	runID := uuid.New().String()

	cfg := config.DefaultGraphConfig("enhance")
	cfg.Checkpoint.Interval = 1
	cfg.Checkpoint.Preserve = true

	graph, err := state.NewGraphWithDeps(cfg, NewLogObserver(runID, s.logger), s.checkpoints)
	if err != nil {
		return nil, fmt.Errorf("create graph: %w", err)
	}

	r := &run{sys: s, upload: upload}
	if err := r.build(graph); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil).
		Set(keyFilename, upload.Filename).
		Set(keyLanguage, language).
		Set(keyCreatedAt, time.Now().UTC())
	initial.RunID = runID

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		s.discardFailed(runID)
		if r.err != nil {
			return nil, r.err
		}
		return nil, fmt.Errorf("execute enhancement: %w", err)
	}

	p, err := pendingFrom(final)
	if err != nil {
		s.discardFailed(runID)
		return nil, err
	}

	if err := s.checkpoints.Save(p.checkpoint()); err != nil {
		s.discardFailed(runID)
		return nil, err
	}

	s.logger.Info("enhancement pending", "run_id", runID, "filename", p.Filename)
	return p, nil
}

func (s *system) Find(ctx context.Context, id string) (*Pending, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	st, err := s.checkpoints.Load(id)
	if err != nil {
		return nil, err
	}
	return pendingFrom(st)
}

func (s *system) Accept(ctx context.Context, id string) (cv.Document, error) {
	p, err := s.Find(ctx, id)
	if err != nil {
		return cv.Document{}, err
	}

	current := s.doc.Document()
	doc := p.Document
	doc.SectionOrder = current.SectionOrder
	doc.SectionStyles = current.SectionStyles
	s.doc.LoadDocument(doc)

	if err := s.checkpoints.Delete(id); err != nil {
		s.logger.Warn("accepted enhancement was not removed", "run_id", id, "error", err)
	}

	s.logger.Info("enhancement accepted", "run_id", id)
	return s.doc.Document(), nil
}

func (s *system) Discard(ctx context.Context, id string) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}
	if err := s.checkpoints.Delete(id); err != nil {
		return err
	}

	s.logger.Info("enhancement discarded", "run_id", id)
	return nil
}

func (s *system) discardFailed(runID string) {
	if err := s.checkpoints.Delete(runID); err != nil {
		s.logger.Warn("failed to remove checkpoint of failed run", "run_id", runID, "error", err)
	}
}

// validID rejects anything that is not a run id before it becomes part of a
// storage key.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// pendingFrom reads a finished run. A checkpoint left by a step that did not
// reach the preview is not a pending enhancement.
func pendingFrom(st state.State) (*Pending, error) {
	if _, ok := st.Get(keyPreview); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, st.RunID)
	}

	doc, err := stateValue[cv.Document](st, keyDocument)
	if err != nil {
		return nil, err
	}
	preview, err := stateValue[string](st, keyPreview)
	if err != nil {
		return nil, err
	}
	filename, _ := stateValue[string](st, keyFilename)
	language, _ := stateValue[string](st, keyLanguage)
	created, _ := stateValue[time.Time](st, keyCreatedAt)

	return &Pending{
		ID:        st.RunID,
		Filename:  filename,
		Language:  language,
		Document:  doc.Clone(),
		Preview:   preview,
		CreatedAt: created,
	}, nil
}

// checkpoint is the saved state of a pending enhancement. The uploaded file is not
// kept once the run has finished.
func (p *Pending) checkpoint() state.State {
	st := state.New(nil).
		Set(keyFilename, p.Filename).
		Set(keyLanguage, p.Language).
		Set(keyDocument, p.Document).
		Set(keyPreview, p.Preview).
		Set(keyCreatedAt, p.CreatedAt)
	st.RunID = p.ID
	return st
}
