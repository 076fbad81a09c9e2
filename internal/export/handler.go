package export

import (
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/talentosprecato/Mari/pkg/handlers"
	"github.com/talentosprecato/Mari/pkg/routes"
)

const defaultFilename = "cv.pdf"

// Handler exposes PDF export over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "export"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/export",
		Description: "PDF export of the rendered CV",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Export},
		},
	}
}

type ExportRequest struct {
	HTML     string `json:"html" validate:"required"`
	Title    string `json:"title" validate:"max=200"`
	Lang     string `json:"lang" validate:"max=16"`
	Filename string `json:"filename" validate:"max=120"`
}

// Export handles POST /export, answering with the PDF as an attachment and
// its page count in X-Page-Count.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Bind[ExportRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Export(r.Context(), Request{
		HTML:  req.HTML,
		Title: req.Title,
		Lang:  req.Lang,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": attachmentName(req.Filename),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Page-Count", strconv.Itoa(result.Pages))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func attachmentName(name string) string {
	name = strings.TrimSpace(path.Base(strings.ReplaceAll(name, `\`, "/")))
	if name == "" || name == "." || name == "/" {
		return defaultFilename
	}
	if !strings.EqualFold(path.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
