package cv_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/pkg/routes"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func newTestServer(t *testing.T) (cv.System, http.Handler) {
	t.Helper()

	sys := newStore(t, storage.NewMemory())
	r := routes.New(testLogger())
	r.RegisterGroup(cv.NewHandler(sys, testLogger()).Routes())
	return sys, r.Build()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Get(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/cv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var doc cv.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Personal.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, "Jane Doe")
	}
}

func TestHandler_UpdateField(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"personal field", "/cv/fields/personal.fullName", `{"value":"Ada"}`, http.StatusNoContent},
		{"top level field", "/cv/fields/skills", `{"value":"Go"}`, http.StatusNoContent},
		{"unknown field", "/cv/fields/personal.age", `{"value":"40"}`, http.StatusBadRequest},
		{"bad body", "/cv/fields/skills", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)

			rec := do(t, h, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestHandler_ItemLifecycle(t *testing.T) {
	sys, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/cv/projects", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var added cv.AddItemResponse
	json.NewDecoder(rec.Body).Decode(&added)
	if added.ID == "" {
		t.Fatal("add returned empty id")
	}

	rec = do(t, h, http.MethodPut, "/cv/projects/"+added.ID, `{"field":"name","value":"Mari"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := sys.Document().Projects[0].Name; got != "Mari" {
		t.Errorf("Name = %q, want %q", got, "Mari")
	}

	rec = do(t, h, http.MethodPut, "/cv/projects/"+added.ID, `{"field":"degree","value":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("foreign field status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = do(t, h, http.MethodDelete, "/cv/projects/"+added.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if n := sys.Document().Len(cv.CollectionProjects); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}

	rec = do(t, h, http.MethodDelete, "/cv/projects/"+added.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("repeat delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestHandler_UnknownCollection(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/cv/hobbies", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_Reorder(t *testing.T) {
	sys, h := newTestServer(t)
	sys.LoadDocument(emptyDocument())

	a := sys.AddItem(cv.CollectionExperience)
	b := sys.AddItem(cv.CollectionExperience)

	rec := do(t, h, http.MethodPost, "/cv/experience/reorder", `{"from":0,"to":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var ids []string
	json.NewDecoder(rec.Body).Decode(&ids)
	if !slices.Equal(ids, []string{b, a}) {
		t.Errorf("ids = %v, want [%s %s]", ids, b, a)
	}
}

func TestHandler_SectionStyle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"valid", "/cv/styles/skills", `{"border":"top","spacing":"large","backgroundColor":"#f0f9ff"}`, http.StatusNoContent},
		{"not stylable", "/cv/styles/personal", `{"border":"top","spacing":"large","backgroundColor":"transparent"}`, http.StatusBadRequest},
		{"bad border", "/cv/styles/skills", `{"border":"double","spacing":"large","backgroundColor":"transparent"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)

			rec := do(t, h, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestHandler_Load(t *testing.T) {
	sys, h := newTestServer(t)

	body := `{"personal":{"fullName":"Grace"},"experience":[{"jobTitle":"Admiral"}],"education":[],"projects":[],"certifications":[]}`
	rec := do(t, h, http.MethodPut, "/cv", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	doc := sys.Document()
	if doc.Personal.FullName != "Grace" {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, "Grace")
	}
	if len(doc.Experience) != 1 || doc.Experience[0].ID == "" {
		t.Errorf("Experience = %+v, want one item with an id", doc.Experience)
	}
}

func TestHandler_Load_DuplicateIDs(t *testing.T) {
	sys, h := newTestServer(t)

	body := `{"personal":{},"experience":[{"id":"x","jobTitle":"First"},{"id":"x","jobTitle":"Second"}],"education":[],"projects":[],"certifications":[]}`
	rec := do(t, h, http.MethodPut, "/cv", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	doc := sys.Document()
	if len(doc.Experience) != 2 {
		t.Fatalf("Experience length = %d, want 2", len(doc.Experience))
	}
	first, second := doc.Experience[0], doc.Experience[1]
	if first.ID != "x" {
		t.Errorf("first ID = %q, want %q", first.ID, "x")
	}
	if second.ID == "x" || second.ID == "" {
		t.Errorf("second ID = %q, want a fresh id", second.ID)
	}

	sys.RemoveItem(cv.CollectionExperience, second.ID)
	doc = sys.Document()
	if len(doc.Experience) != 1 || doc.Experience[0].JobTitle != "First" {
		t.Errorf("Experience = %+v, want only the first item", doc.Experience)
	}
}

func TestHandler_Status(t *testing.T) {
	sys, h := newTestServer(t)
	sys.UpdateField(cv.FieldSkills, "Go")

	rec := do(t, h, http.MethodGet, "/cv/status", "")

	var ev cv.StatusEvent
	json.NewDecoder(rec.Body).Decode(&ev)
	if ev.Status != cv.StatusSaving {
		t.Errorf("Status = %q, want %q", ev.Status, cv.StatusSaving)
	}
	if ev.Revision != 1 {
		t.Errorf("Revision = %d, want 1", ev.Revision)
	}
}

func TestHandler_StatusStream(t *testing.T) {
	sys, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/cv/status/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	scanner := bufio.NewScanner(resp.Body)
	next := func() cv.StatusEvent {
		for scanner.Scan() {
			line := scanner.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var ev cv.StatusEvent
				json.Unmarshal([]byte(data), &ev)
				return ev
			}
		}
		t.Fatalf("stream ended: %v", scanner.Err())
		return cv.StatusEvent{}
	}

	if ev := next(); ev.Status != cv.StatusIdle {
		t.Errorf("first event = %q, want %q", ev.Status, cv.StatusIdle)
	}

	sys.UpdateField(cv.FieldSkills, "Go")

	var got []cv.Status
	for range 3 {
		got = append(got, next().Status)
	}
	want := []cv.Status{cv.StatusSaving, cv.StatusSaved, cv.StatusIdle}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
