package routes_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentosprecato/Mari/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}
}

func TestBuild(t *testing.T) {
	sys := routes.New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: respond("OK")})
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{{
			Prefix: "/cv",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: respond("document")},
				{Method: "PATCH", Pattern: "/fields", Handler: respond("field")},
				{Method: "DELETE", Pattern: "/{collection}/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
					io.WriteString(w, r.PathValue("collection")+":"+r.PathValue("id"))
				}},
			},
		}},
	})

	handler := sys.Build()

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"GET", "/healthz", http.StatusOK, "OK"},
		{"GET", "/api/cv", http.StatusOK, "document"},
		{"PATCH", "/api/cv/fields", http.StatusOK, "field"},
		{"DELETE", "/api/cv/experience/e1", http.StatusOK, "experience:e1"},
		{"POST", "/api/cv", http.StatusMethodNotAllowed, ""},
		{"GET", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}

	if len(sys.Groups()) != 1 || len(sys.Routes()) != 1 {
		t.Errorf("Groups() = %d, Routes() = %d, want 1 and 1", len(sys.Groups()), len(sys.Routes()))
	}
}
