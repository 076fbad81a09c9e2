package enhance

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Handler exposes CV import and enhancement over HTTP.
type Handler struct {
	sys           System
	maxUploadSize int64
	logger        *slog.Logger
}

// NewHandler creates a Handler. maxUploadSize bounds the multipart request.
func NewHandler(sys System, maxUploadSize int64, logger *slog.Logger) *Handler {
	return &Handler{
		sys:           sys,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("handler", "enhance"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/enhance",
		Description: "CV file import with a rendered preview",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Start},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/{id}/accept", Handler: h.Accept},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Discard},
		},
	}
}

// StartForm is the multipart request of POST /enhance.
type StartForm struct {
	Upload   Upload
	Language string
}

// ParseStartForm reads the "file" part and the optional "language" field.
func ParseStartForm(r *http.Request, maxSize int64) (*StartForm, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return nil, ErrNoFile
	}

	fh := files[0]
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fh.Filename, err)
	}

	return &StartForm{
		Upload: Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		},
		Language: r.FormValue("language"),
	}, nil
}

// Start handles POST /enhance, turning an uploaded CV file into a pending
// enhancement with a Markdown preview.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	form, err := ParseStartForm(r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, uploadStatus(err), err)
		return
	}

	p, err := h.sys.Start(r.Context(), form.Upload, form.Language)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, p)
}

// Find handles GET /enhance/{id}.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Accept handles POST /enhance/{id}/accept and returns the new Document.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	doc, err := h.sys.Accept(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Discard handles DELETE /enhance/{id}.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Discard(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func uploadStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
