package prompts

import (
	"log/slog"
	"net/http"

	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Handler serves the template and language catalogs.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "catalog")}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/catalog",
		Description: "CV templates and output languages",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/templates", Handler: h.Templates},
			{Method: "GET", Pattern: "/languages", Handler: h.Languages},
		},
	}
}

// Templates handles GET /catalog/templates.
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Templates())
}

// Languages handles GET /catalog/languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Languages())
}
