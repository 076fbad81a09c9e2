package ai

import (
	"iter"
	"log/slog"
	"net/http"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/prompts"
	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Handler renders the current Document and writes narrative scripts.
type Handler struct {
	sys    System
	doc    cv.System
	logger *slog.Logger
}

func NewHandler(sys System, doc cv.System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		doc:    doc,
		logger: logger.With("handler", "ai"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "CV rendering and narrative scripts",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
			{Method: "POST", Pattern: "/generate/stream", Handler: h.GenerateStream},
			{Method: "POST", Pattern: "/script", Handler: h.Script},
		},
	}
}

type GenerateRequest struct {
	Template       string         `json:"template"`
	Sections       []cv.SectionID `json:"sections"`
	Language       string         `json:"language"`
	PhotoAlignment string         `json:"photoAlignment" validate:"omitempty,oneof=left right none"`
}

func (r GenerateRequest) options() prompts.Options {
	return prompts.Options{
		Template:       r.Template,
		Sections:       r.Sections,
		Language:       r.Language,
		PhotoAlignment: r.PhotoAlignment,
	}
}

type GenerateResponse struct {
	Markdown string `json:"markdown"`
}

// Fragment is one event of a generate stream.
type Fragment struct {
	Text string `json:"text"`
}

type ScriptRequest struct {
	Language string `json:"language"`
}

type ScriptResponse struct {
	Script string `json:"script"`
}

// Generate handles POST /generate, rendering the current Document as Markdown.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[GenerateRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	md, err := h.sys.Generate(r.Context(), h.doc.Document(), req.options())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, GenerateResponse{Markdown: md})
}

// GenerateStream handles POST /generate/stream. A failure before the first
// fragment is reported as a JSON error; later failures end the stream with an
// error event.
func (h *Handler) GenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[GenerateRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	next, stop := iter.Pull2(h.sys.GenerateStream(r.Context(), h.doc.Document(), req.options()))
	defer stop()

	text, err, ok := next()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	stream := handlers.NewEventStream(w)
	for ok {
		if err != nil {
			h.logger.Error("generate stream failed", "error", err)
			stream.SendError(err)
			return
		}
		if err := stream.Send(Fragment{Text: text}); err != nil {
			return
		}
		text, err, ok = next()
	}
	stream.Done()
}

// Script handles POST /script. The script is returned, never stored.
func (h *Handler) Script(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[ScriptRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	script, err := h.sys.Script(r.Context(), h.doc.Document(), req.Language)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ScriptResponse{Script: script})
}
