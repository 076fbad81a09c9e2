package cv

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/talentosprecato/Mari/pkg/debounce"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
	"github.com/talentosprecato/Mari/pkg/storage"
)

// System is the Document Store: the single owner and mutator of the CV
// Document. Mutations apply synchronously and never fail; a mutation that
// changes the Document schedules a save once the Store has been quiet for the
// configured delay.
type System interface {
	UpdateField(field Field, value string)
	SetSocialLinks(links []SocialLink)
	AddItem(c Collection) string
	UpdateItem(c Collection, id string, field ItemField, value string)
	RemoveItem(c Collection, id string)
	ReorderItem(c Collection, from, to int)
	LoadDocument(doc Document)
	SetSectionOrder(order []SectionID)
	SetSectionStyle(section StylableSection, style SectionStyle)

	// Document returns a deep copy of the current Document.
	Document() Document

	// Status returns the latest status event.
	Status() StatusEvent

	// Subscribe registers fn for every status transition. fn runs on the
	// goroutine that caused the transition and must not block.
	Subscribe(fn func(StatusEvent)) (cancel func())

	// Flush runs a pending save immediately and waits for any save in
	// flight. It returns the error of the save it ran, if any.
	Flush(ctx context.Context) error

	Start(lc *lifecycle.Coordinator) error
}

type store struct {
	storage    storage.System
	key        string
	resetDelay time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	doc      Document
	revision uint64
	saved    uint64
	status   StatusEvent
	reset    *time.Timer

	saver   *debounce.Timer
	writeMu sync.Mutex

	subsMu  sync.Mutex
	subs    map[int]func(StatusEvent)
	nextSub int
}

// New loads the Document from the snapshot at cfg.SnapshotKey, falling back to
// Default when the snapshot is absent, unreadable or malformed.
func New(ctx context.Context, cfg *Config, st storage.System, logger *slog.Logger) System {
	s := newStore(cfg, st, logger.With("system", "cv"))
	s.doc = s.load(ctx)
	return s
}

func newStore(cfg *Config, st storage.System, logger *slog.Logger) *store {
	s := &store{
		storage:    st,
		key:        cfg.SnapshotKey,
		resetDelay: cfg.StatusResetDelayDuration(),
		logger:     logger,
		status:     StatusEvent{Status: StatusIdle, Time: time.Now()},
		subs:       make(map[int]func(StatusEvent)),
	}
	s.saver = debounce.New(cfg.SaveDelayDuration(), func() {
		s.save(context.Background())
	})
	return s
}

func (s *store) load(ctx context.Context) Document {
	data, err := s.storage.Retrieve(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info("no snapshot found, using default document", "key", s.key)
		} else {
			s.logger.Warn("snapshot read failed, using default document", "key", s.key, "error", err)
		}
		return Default()
	}

	doc, err := Decode(data)
	if err != nil {
		s.logger.Warn("snapshot rejected, using default document", "key", s.key, "error", err)
		return Default()
	}

	s.logger.Info("snapshot loaded", "key", s.key)
	return doc
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.Flush(ctx); err != nil {
			s.logger.Error("final save failed", "error", err)
			return
		}
		s.logger.Info("document flushed")
	})
	return nil
}

func (s *store) UpdateField(field Field, value string) {
	s.mutate(func(d *Document) bool {
		return d.setField(field, value)
	})
}

func (s *store) SetSocialLinks(links []SocialLink) {
	links = slices.Clone(links)
	if links == nil {
		links = []SocialLink{}
	}
	s.mutate(func(d *Document) bool {
		if slices.Equal(d.Personal.SocialLinks, links) {
			return false
		}
		d.Personal.SocialLinks = links
		return true
	})
}

func (s *store) AddItem(c Collection) string {
	id := newID()
	var added bool
	s.mutate(func(d *Document) bool {
		added = d.addItem(c, id)
		return added
	})
	if !added {
		return ""
	}
	return id
}

func (s *store) UpdateItem(c Collection, id string, field ItemField, value string) {
	s.mutate(func(d *Document) bool {
		return d.updateItem(c, id, field, value)
	})
}

func (s *store) RemoveItem(c Collection, id string) {
	s.mutate(func(d *Document) bool {
		return d.removeItem(c, id)
	})
}

func (s *store) ReorderItem(c Collection, from, to int) {
	s.mutate(func(d *Document) bool {
		return d.moveItem(c, from, to)
	})
}

func (s *store) LoadDocument(doc Document) {
	doc = doc.Clone()
	s.mutate(func(d *Document) bool {
		*d = doc
		return true
	})
}

func (s *store) SetSectionOrder(order []SectionID) {
	order = slices.Clone(order)
	if order == nil {
		order = []SectionID{}
	}
	s.mutate(func(d *Document) bool {
		if slices.Equal(d.SectionOrder, order) {
			return false
		}
		d.SectionOrder = order
		return true
	})
}

func (s *store) SetSectionStyle(section StylableSection, style SectionStyle) {
	if _, err := ParseStylableSection(string(section)); err != nil {
		return
	}
	s.mutate(func(d *Document) bool {
		if cur, ok := d.SectionStyles[section]; ok && cur == style {
			return false
		}
		d.SectionStyles[section] = style
		return true
	})
}

func (s *store) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *store) Status() StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *store) Subscribe(fn func(StatusEvent)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *store) Flush(ctx context.Context) error {
	if s.saver.Stop() {
		return s.save(ctx)
	}

	// wait for a save the timer already started
	s.writeMu.Lock()
	s.writeMu.Unlock()

	s.mu.Lock()
	dirty := s.revision != s.saved
	s.mu.Unlock()

	if dirty && !s.saver.Pending() {
		return s.save(ctx)
	}
	return nil
}

// mutate applies fn to the Document. When fn reports a change the revision
// advances, the status becomes saving and the save timer restarts.
func (s *store) mutate(fn func(d *Document) bool) {
	s.mu.Lock()
	if !fn(&s.doc) {
		s.mu.Unlock()
		return
	}
	s.revision++
	if s.reset != nil {
		s.reset.Stop()
		s.reset = nil
	}
	ev := s.setStatus(StatusSaving, "")
	s.mu.Unlock()

	s.saver.Trigger()
	s.notify(ev)
}

// save writes the Document as it is when the write starts. Writes are
// serialized so the last one to finish carries the newest state.
func (s *store) save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	doc := s.doc.Clone()
	rev := s.revision
	s.mu.Unlock()

	data, err := Encode(doc)
	if err == nil {
		err = s.storage.Store(ctx, s.key, data)
	}

	if err != nil {
		s.logger.Error("document save failed", "revision", rev, "error", err)
	} else {
		s.logger.Debug("document saved", "revision", rev, "bytes", len(data))
	}

	s.mu.Lock()
	if err == nil && rev > s.saved {
		s.saved = rev
	}
	if s.revision != rev {
		// a newer mutation is waiting for its own save
		s.mu.Unlock()
		return err
	}

	var ev StatusEvent
	if err != nil {
		ev = s.setStatus(StatusError, err.Error())
	} else {
		ev = s.setStatus(StatusSaved, "")
	}
	s.reset = time.AfterFunc(s.resetDelay, func() { s.resetStatus(rev) })
	s.mu.Unlock()

	s.notify(ev)
	return err
}

func (s *store) resetStatus(rev uint64) {
	s.mu.Lock()
	if s.revision != rev || (s.status.Status != StatusSaved && s.status.Status != StatusError) {
		s.mu.Unlock()
		return
	}
	s.reset = nil
	ev := s.setStatus(StatusIdle, "")
	s.mu.Unlock()

	s.notify(ev)
}

// setStatus must be called with mu held.
func (s *store) setStatus(status Status, errText string) StatusEvent {
	s.status = StatusEvent{
		Status:   status,
		Revision: s.revision,
		Time:     time.Now(),
		Error:    errText,
	}
	return s.status
}

func (s *store) notify(ev StatusEvent) {
	s.subsMu.Lock()
	fns := make([]func(StatusEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
