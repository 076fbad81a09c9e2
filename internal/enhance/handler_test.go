package enhance_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/enhance"
	"github.com/talentosprecato/Mari/pkg/routes"
)

func newTestServer(t *testing.T, maxUpload int64) (*fixture, http.Handler) {
	t.Helper()

	f := newFixture(t)
	r := routes.New(testLogger())
	r.RegisterGroup(enhance.NewHandler(f.sys, maxUpload, testLogger()).Routes())
	return f, r.Build()
}

func multipartRequest(t *testing.T, filename, contentType string, data []byte, language string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if filename != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(data)
	}
	if language != "" {
		mw.WriteField("language", language)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/enhance", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Lifecycle(t *testing.T) {
	f, h := newTestServer(t, 1<<20)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, "cv.txt", "text/plain", []byte("Ada Lovelace"), "es"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var p enhance.Pending
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Language != "es" {
		t.Errorf("Language = %q, want %q", p.Language, "es")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/enhance/"+p.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("find status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/enhance/"+p.ID+"/accept", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("accept status = %d, want %d", rec.Code, http.StatusOK)
	}

	var doc cv.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Personal.FullName != "Ada Lovelace" {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, "Ada Lovelace")
	}
	if got := f.doc.Document().Personal.FullName; got != "Ada Lovelace" {
		t.Errorf("store FullName = %q, want %q", got, "Ada Lovelace")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/enhance/"+p.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("find after accept status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandler_Discard(t *testing.T) {
	_, h := newTestServer(t, 1<<20)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, "cv.txt", "text/plain", []byte("cv"), ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var p enhance.Pending
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/enhance/"+p.ID, nil))
		if rec.Code != want {
			t.Errorf("discard status = %d, want %d", rec.Code, want)
		}
	}
}

func TestHandler_StartErrors(t *testing.T) {
	tests := []struct {
		name      string
		maxUpload int64
		filename  string
		mime      string
		data      []byte
		status    int
	}{
		{"missing file", 1 << 20, "", "", nil, http.StatusBadRequest},
		{"unsupported type", 1 << 20, "photo.png", "image/png", []byte("png"), http.StatusUnsupportedMediaType},
		{"empty file", 1 << 20, "cv.txt", "text/plain", nil, http.StatusUnprocessableEntity},
		{"request too large", 256, "cv.txt", "text/plain", bytes.Repeat([]byte("a"), 4096), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t, tt.maxUpload)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, multipartRequest(t, tt.filename, tt.mime, tt.data, ""))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}
