package prompts_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentosprecato/Mari/internal/prompts"
	"github.com/talentosprecato/Mari/pkg/routes"
)

func newCatalogServer() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := routes.New(logger)
	r.RegisterGroup(prompts.NewHandler(logger).Routes())
	return r.Build()
}

func TestHandler_Templates(t *testing.T) {
	rec := httptest.NewRecorder()
	newCatalogServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/templates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 9 {
		t.Fatalf("len = %d, want 9", len(got))
	}
	if got[0]["id"] != "modern" {
		t.Errorf("first id = %v, want modern", got[0]["id"])
	}
	if _, ok := got[0]["instructions"]; ok {
		t.Error("instructions are exposed")
	}
}

func TestHandler_Languages(t *testing.T) {
	rec := httptest.NewRecorder()
	newCatalogServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/languages", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got []prompts.Language
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	codes := make([]string, len(got))
	for i, l := range got {
		codes[i] = l.Code
	}
	want := []string{"en", "it", "fr", "es", "pt", "ru", "ar", "it-sal", "it-sic"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], want[i])
		}
	}
}
