package enhance_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/enhance"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/internal/prompts"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAI parses every upload into doc and renders preview.
type fakeAI struct {
	mu         sync.Mutex
	doc        cv.Document
	preview    string
	parseErr   error
	previewErr error
	sources    []imports.Source
	languages  []string
	options    []prompts.Options
}

func (f *fakeAI) Generate(ctx context.Context, doc cv.Document, opts prompts.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options = append(f.options, opts)
	if f.previewErr != nil {
		return "", f.previewErr
	}
	return f.preview, nil
}

func (f *fakeAI) GenerateStream(ctx context.Context, doc cv.Document, opts prompts.Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {}
}

func (f *fakeAI) Parse(ctx context.Context, src imports.Source, language string) (cv.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, src)
	f.languages = append(f.languages, language)
	if f.parseErr != nil {
		return cv.Document{}, f.parseErr
	}
	return f.doc.Clone(), nil
}

func (f *fakeAI) Script(ctx context.Context, doc cv.Document, language string) (string, error) {
	return "", nil
}

func (f *fakeAI) FindJobs(ctx context.Context, doc cv.Document, location, language string) ([]ai.JobSuggestion, error) {
	return nil, nil
}

func parsedDocument() cv.Document {
	doc := cv.Default()
	doc.Personal.FullName = "Ada Lovelace"
	doc.Experience = []cv.Experience{
		{JobTitle: "Analyst", Company: "Babbage & Co"},
		{JobTitle: "Translator", Company: "Taylor's Scientific Memoirs"},
	}
	doc.Education = nil
	doc.Projects = nil
	doc.Certifications = []cv.Certification{{Name: "Mathematics"}}
	return doc
}

type fixture struct {
	ai      *fakeAI
	doc     cv.System
	storage *storage.Memory
	sys     enhance.System
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cvCfg := &cv.Config{SaveDelay: "1h", StatusResetDelay: "1h"}
	if err := cvCfg.Finalize(nil); err != nil {
		t.Fatalf("cv config: %v", err)
	}
	importCfg := &imports.Config{}
	if err := importCfg.Finalize(nil); err != nil {
		t.Fatalf("imports config: %v", err)
	}

	st := storage.NewMemory()
	fake := &fakeAI{doc: parsedDocument(), preview: "# Ada Lovelace"}
	doc := cv.New(context.Background(), cvCfg, st, testLogger())

	return &fixture{
		ai:      fake,
		doc:     doc,
		storage: st,
		sys:     enhance.New(fake, doc, st, importCfg, testLogger()),
	}
}

func textUpload(body string) enhance.Upload {
	return enhance.Upload{Filename: "cv.txt", ContentType: "text/plain", Data: []byte(body)}
}

func checkpointKeys(t *testing.T, st storage.System) []string {
	t.Helper()
	keys, err := st.List(context.Background(), "enhance/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	return keys
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	before := f.doc.Document()

	p, err := f.sys.Start(context.Background(), textUpload("Ada Lovelace, analyst"), "it")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if p.ID == "" {
		t.Error("ID is empty")
	}
	if p.Preview != "# Ada Lovelace" {
		t.Errorf("Preview = %q, want %q", p.Preview, "# Ada Lovelace")
	}
	if p.Filename != "cv.txt" {
		t.Errorf("Filename = %q, want %q", p.Filename, "cv.txt")
	}
	if p.Language != "it" {
		t.Errorf("Language = %q, want %q", p.Language, "it")
	}

	if len(f.ai.sources) != 1 || f.ai.sources[0].Text != "Ada Lovelace, analyst" {
		t.Errorf("parsed sources = %+v", f.ai.sources)
	}
	if f.ai.languages[0] != "it" {
		t.Errorf("parse language = %q, want %q", f.ai.languages[0], "it")
	}

	seen := map[string]bool{}
	for _, e := range p.Document.Experience {
		if e.ID == "" || seen[e.ID] {
			t.Errorf("experience id %q is empty or repeated", e.ID)
		}
		seen[e.ID] = true
	}
	if p.Document.Certifications[0].ID == "" {
		t.Error("certification id is empty")
	}

	if !reflect.DeepEqual(f.doc.Document(), before) {
		t.Error("Start changed the Document Store")
	}

	keys := checkpointKeys(t, f.storage)
	if want := []string{"enhance/" + p.ID + ".json"}; !slices.Equal(keys, want) {
		t.Errorf("checkpoints = %v, want %v", keys, want)
	}
}

func TestStart_PreviewOptions(t *testing.T) {
	f := newFixture(t)

	if _, err := f.sys.Start(context.Background(), textUpload("cv"), "fr"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	opts := f.ai.options[0]
	if opts.Template != "modern" {
		t.Errorf("Template = %q, want %q", opts.Template, "modern")
	}
	if opts.PhotoAlignment != "right" {
		t.Errorf("PhotoAlignment = %q, want %q", opts.PhotoAlignment, "right")
	}
	if opts.Language != "fr" {
		t.Errorf("Language = %q, want %q", opts.Language, "fr")
	}
	if slices.Contains(opts.Sections, cv.SectionJobSearch) {
		t.Errorf("Sections = %v, want no %q", opts.Sections, cv.SectionJobSearch)
	}
	if want := len(cv.DefaultSectionOrder()) - 1; len(opts.Sections) != want {
		t.Errorf("len(Sections) = %d, want %d", len(opts.Sections), want)
	}
}

func TestStart_Failures(t *testing.T) {
	tests := []struct {
		name   string
		upload enhance.Upload
		setup  func(*fakeAI)
		status int
	}{
		{
			name:   "unsupported file",
			upload: enhance.Upload{Filename: "cv.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
			status: http.StatusUnsupportedMediaType,
		},
		{
			name:   "empty file",
			upload: enhance.Upload{Filename: "cv.txt", ContentType: "text/plain"},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "parse failure",
			upload: textUpload("cv"),
			setup:  func(f *fakeAI) { f.parseErr = ai.ErrInvalidResponse },
			status: http.StatusBadGateway,
		},
		{
			name:   "preview failure",
			upload: textUpload("cv"),
			setup:  func(f *fakeAI) { f.previewErr = ai.ErrNotConfigured },
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f.ai)
			}
			before := f.doc.Document()

			_, err := f.sys.Start(context.Background(), tt.upload, "en")
			if err == nil {
				t.Fatal("Start() error = nil")
			}
			if got := enhance.MapHTTPStatus(err); got != tt.status {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", err, got, tt.status)
			}

			if !reflect.DeepEqual(f.doc.Document(), before) {
				t.Error("failed Start changed the Document Store")
			}
			if keys := checkpointKeys(t, f.storage); len(keys) != 0 {
				t.Errorf("checkpoints = %v, want none", keys)
			}
		})
	}
}

func TestFind(t *testing.T) {
	f := newFixture(t)

	p, err := f.sys.Start(context.Background(), textUpload("cv"), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	got, err := f.sys.Find(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got.Preview != p.Preview {
		t.Errorf("Preview = %q, want %q", got.Preview, p.Preview)
	}
	if !reflect.DeepEqual(got.Document, p.Document) {
		t.Errorf("Document = %+v, want %+v", got.Document, p.Document)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, p.CreatedAt)
	}
}

func TestFind_NotFound(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"3f0c1f43-2f3c-4f43-9d6a-1a1d2b3c4d5e", "not-an-id", "../cv/document"} {
		if _, err := f.sys.Find(context.Background(), id); !errors.Is(err, enhance.ErrNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestAccept(t *testing.T) {
	f := newFixture(t)

	order := []cv.SectionID{cv.SectionSkills, cv.SectionPersonal}
	f.doc.SetSectionOrder(order)
	style := cv.SectionStyle{Border: cv.BorderFull, Spacing: cv.SpacingLarge, BackgroundColor: cv.BackgroundSky}
	f.doc.SetSectionStyle(cv.StyleSkills, style)

	p, err := f.sys.Start(context.Background(), textUpload("cv"), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	doc, err := f.sys.Accept(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if doc.Personal.FullName != "Ada Lovelace" {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, "Ada Lovelace")
	}
	if !slices.Equal(doc.IDs(cv.CollectionExperience), p.Document.IDs(cv.CollectionExperience)) {
		t.Errorf("experience ids = %v, want %v", doc.IDs(cv.CollectionExperience), p.Document.IDs(cv.CollectionExperience))
	}
	if !slices.Equal(doc.SectionOrder, order) {
		t.Errorf("SectionOrder = %v, want %v", doc.SectionOrder, order)
	}
	if got := doc.StyleFor(cv.StyleSkills); got != style {
		t.Errorf("StyleFor(skills) = %+v, want %+v", got, style)
	}
	if !reflect.DeepEqual(f.doc.Document(), doc) {
		t.Error("Accept() result differs from the Document Store")
	}

	if _, err := f.sys.Find(context.Background(), p.ID); !errors.Is(err, enhance.ErrNotFound) {
		t.Errorf("Find() after Accept error = %v, want ErrNotFound", err)
	}
	if _, err := f.sys.Accept(context.Background(), p.ID); !errors.Is(err, enhance.ErrNotFound) {
		t.Errorf("second Accept() error = %v, want ErrNotFound", err)
	}
}

func TestDiscard(t *testing.T) {
	f := newFixture(t)
	before := f.doc.Document()

	p, err := f.sys.Start(context.Background(), textUpload("cv"), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := f.sys.Discard(context.Background(), p.ID); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if err := f.sys.Discard(context.Background(), p.ID); !errors.Is(err, enhance.ErrNotFound) {
		t.Errorf("second Discard() error = %v, want ErrNotFound", err)
	}
	if !reflect.DeepEqual(f.doc.Document(), before) {
		t.Error("Discard changed the Document Store")
	}
	if keys := checkpointKeys(t, f.storage); len(keys) != 0 {
		t.Errorf("checkpoints = %v, want none", keys)
	}
}

func TestStorageCheckpointStore(t *testing.T) {
	st := storage.NewMemory()
	store := enhance.NewStorageCheckpointStore(st, testLogger())

	s := state.New(nil).Set("preview", "# CV")
	s.RunID = "run-1"

	if err := store.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load("run-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v, _ := loaded.Get("preview"); v != "# CV" {
		t.Errorf("preview = %v, want %q", v, "# CV")
	}

	ids, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !slices.Equal(ids, []string{"run-1"}) {
		t.Errorf("List() = %v, want [run-1]", ids)
	}

	if err := store.Delete("run-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load("run-1"); !errors.Is(err, enhance.ErrNotFound) {
		t.Errorf("Load() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestLogObserver(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := enhance.NewLogObserver("run-1", logger)

	now := time.Now()
	events := []observability.Event{
		{Type: observability.EventNodeStart, Timestamp: now, Data: map[string]any{"node": "parse", "iteration": 0}},
		{Type: observability.EventNodeComplete, Timestamp: now.Add(time.Second), Data: map[string]any{"node": "parse", "iteration": 0}},
		{Type: observability.EventEdgeTransition, Timestamp: now, Data: map[string]any{"from": "parse", "to": "identify"}},
		{Type: observability.EventNodeComplete, Timestamp: now, Data: map[string]any{"node": "preview", "error": true, "error_message": "boom"}},
	}
	for _, e := range events {
		obs.OnEvent(context.Background(), e)
	}

	out := buf.String()
	for _, want := range []string{
		"step started", "step=parse",
		"step completed", "duration=1s",
		"transition", "to=identify",
		"step failed", "error=boom",
		"run_id=run-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{enhance.ErrNotFound, http.StatusNotFound},
		{enhance.ErrNoFile, http.StatusBadRequest},
		{imports.ErrTooManyPages, http.StatusUnprocessableEntity},
		{imports.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{ai.ErrEmptyResponse, http.StatusBadGateway},
		{ai.ErrNotConfigured, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := enhance.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
