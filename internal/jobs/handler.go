// Package jobs serves job suggestions for the current CV.
package jobs

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Finder searches for roles that match a Document. ai.System satisfies it.
type Finder interface {
	FindJobs(ctx context.Context, doc cv.Document, location, language string) ([]ai.JobSuggestion, error)
}

// Handler exposes the job search over HTTP.
type Handler struct {
	finder Finder
	doc    cv.System
	logger *slog.Logger
}

func NewHandler(finder Finder, doc cv.System, logger *slog.Logger) *Handler {
	return &Handler{
		finder: finder,
		doc:    doc,
		logger: logger.With("handler", "jobs"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/jobs",
		Description: "Job opportunities matching the CV",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Find},
		},
	}
}

// Request narrows the search. An empty location searches without one.
type Request struct {
	Location string `json:"location" validate:"max=200"`
	Language string `json:"language"`
}

// Find handles POST /jobs, returning suggested roles with hiring
// organizations for the current Document.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[Request](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	suggestions, err := h.finder.FindJobs(r.Context(), h.doc.Document(), strings.TrimSpace(req.Location), req.Language)
	if err != nil {
		handlers.RespondError(w, h.logger, ai.MapHTTPStatus(err), err)
		return
	}

	if suggestions == nil {
		suggestions = []ai.JobSuggestion{}
	}
	handlers.RespondJSON(w, http.StatusOK, suggestions)
}
