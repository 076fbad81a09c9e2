// Package export prints the rendered CV to an A4 PDF with headless Chrome.
// It works on the markup it is given and never reads the Document Store.
package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Request is the markup to print. HTML is either a complete page or a
// fragment, such as the preview region, that is wrapped in an A4 page.
type Request struct {
	HTML  string
	Title string
	Lang  string
}

// Result is a validated PDF.
type Result struct {
	Data  []byte
	Pages int
}

type System interface {
	Export(ctx context.Context, req Request) (*Result, error)
}

type system struct {
	renderer Renderer
	timeout  time.Duration
	maxSize  int64
	logger   *slog.Logger
}

func New(renderer Renderer, cfg *Config, logger *slog.Logger) System {
	return &system{
		renderer: renderer,
		timeout:  cfg.TimeoutDuration(),
		maxSize:  cfg.MaxHTMLSizeBytes(),
		logger:   logger.With("system", "export"),
	}
}

func (s *system) Export(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, ErrEmptyHTML
	}
	if s.maxSize > 0 && int64(len(req.HTML)) > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(req.HTML))
	}

	html, err := Page(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	data, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}

	s.logger.Info("cv exported", "pages", pages, "bytes", len(data), "duration", time.Since(start))
	return &Result{Data: data, Pages: pages}, nil
}

// Page returns the HTML page printed for req. Complete documents pass through
// unchanged.
func Page(req Request) (string, error) {
	head := strings.ToLower(strings.TrimSpace(req.HTML))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		return req.HTML, nil
	}

	title := req.Title
	if title == "" {
		title = "CV"
	}
	lang := req.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Lang  string
		Body  template.HTML
	}{title, lang, template.HTML(req.HTML)})
	if err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return buf.String(), nil
}
