package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/pkg/routes"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func newTestHandler(t *testing.T, model ai.Model) http.Handler {
	t.Helper()

	cfg := &cv.Config{}
	cfg.Finalize(nil)
	doc := cv.New(context.Background(), cfg, storage.NewMemory(), testLogger())

	r := routes.New(testLogger())
	r.RegisterGroup(ai.NewHandler(ai.New(model, testConfig(t), testLogger()), doc, testLogger()).Routes())
	return r.Build()
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestHandler_Generate(t *testing.T) {
	h := newTestHandler(t, &fakeModel{replies: []reply{{text: "# Jane Doe"}}})

	rec := post(h, "/generate", `{"template":"modern","photoAlignment":"left"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp ai.GenerateResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Markdown != "# Jane Doe" {
		t.Errorf("Markdown = %q, want %q", resp.Markdown, "# Jane Doe")
	}
}

func TestHandler_GenerateValidation(t *testing.T) {
	h := newTestHandler(t, &fakeModel{replies: []reply{{text: "x"}}})

	rec := post(h, "/generate", `{"photoAlignment":"center"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_GenerateStream(t *testing.T) {
	h := newTestHandler(t, &fakeModel{streams: [][]reply{{{text: "# Jane"}, {text: " Doe"}}}})

	rec := post(h, "/generate/stream", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	want := "data: {\"text\":\"# Jane\"}\n\ndata: {\"text\":\" Doe\"}\n\ndata: [DONE]\n\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestHandler_GenerateStream_FailsBeforeFirstFragment(t *testing.T) {
	h := newTestHandler(t, &fakeModel{streams: [][]reply{{{err: ai.ErrNotConfigured}}}})

	rec := post(h, "/generate/stream", `{}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestHandler_GenerateStream_FailsMidway(t *testing.T) {
	h := newTestHandler(t, &fakeModel{streams: [][]reply{{{text: "# Jane"}, {err: ai.ErrInvalidResponse}}}})

	rec := post(h, "/generate/stream", `{}`)
	body := rec.Body.String()

	if !strings.Contains(body, `"error":`) {
		t.Errorf("body = %q, want an error event", body)
	}
	if strings.Contains(body, "[DONE]") {
		t.Error("failed stream ends with [DONE]")
	}
}

func TestHandler_Script(t *testing.T) {
	h := newTestHandler(t, &fakeModel{replies: []reply{{text: "Hello, I am Jane."}}})

	rec := post(h, "/script", `{"language":"en"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp ai.ScriptResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Script != "Hello, I am Jane." {
		t.Errorf("Script = %q", resp.Script)
	}
}
