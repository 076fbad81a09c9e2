// Package ai is the boundary to the Gemini generative model. It renders the
// CV, parses uploaded CVs into Documents, writes narrative scripts and
// searches for matching jobs.
package ai

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/internal/prompts"
)

// System defines the generative operations used by the editor.
type System interface {
	Generate(ctx context.Context, doc cv.Document, opts prompts.Options) (string, error)

	// GenerateStream yields Markdown fragments as the model produces them.
	// Nothing is requested until the sequence is iterated.
	GenerateStream(ctx context.Context, doc cv.Document, opts prompts.Options) iter.Seq2[string, error]

	// Parse converts an uploaded CV into a Document. Items carry no ids.
	Parse(ctx context.Context, src imports.Source, language string) (cv.Document, error)

	Script(ctx context.Context, doc cv.Document, language string) (string, error)
	FindJobs(ctx context.Context, doc cv.Document, location, language string) ([]JobSuggestion, error)
}

type system struct {
	model      Model
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
}

// New creates the ai system over model.
func New(model Model, cfg *Config, logger *slog.Logger) System {
	return &system{
		model:      model,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.InitialBackoffDuration(),
		logger:     logger.With("system", "ai"),
	}
}

func (s *system) Generate(ctx context.Context, doc cv.Document, opts prompts.Options) (string, error) {
	prompt, err := prompts.Generate(doc, opts)
	if err != nil {
		return "", err
	}

	text, err := s.text(ctx, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	s.logger.Info("cv generated", "template", prompts.LookupTemplate(opts.Template).ID, "chars", len(text))
	return text, nil
}

func (s *system) GenerateStream(ctx context.Context, doc cv.Document, opts prompts.Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		prompt, err := prompts.Generate(doc, opts)
		if err != nil {
			yield("", err)
			return
		}

		contents := genai.Text(prompt)
		emitted := false
		for attempt := 0; ; attempt++ {
			var failed error
			for resp, err := range s.model.Stream(ctx, contents, nil) {
				if err != nil {
					failed = err
					break
				}
				fragment := resp.Text()
				if fragment == "" {
					continue
				}
				emitted = true
				if !yield(fragment, nil) {
					return
				}
			}

			if failed == nil {
				break
			}
			// a stream is only restarted before its first fragment
			if emitted || attempt >= s.maxRetries || !transient(failed) {
				yield("", failed)
				return
			}
			s.logger.Warn("stream failed, retrying", "attempt", attempt+1, "error", failed)
			select {
			case <-time.After(s.backoff << attempt):
			case <-ctx.Done():
				yield("", ctx.Err())
				return
			}
		}

		if !emitted {
			yield("", ErrEmptyResponse)
		}
	}
}

// Collect drains a fragment sequence into the complete text. It stops at the
// first error.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var b strings.Builder
	for fragment, err := range seq {
		if err != nil {
			return "", err
		}
		b.WriteString(fragment)
	}
	return b.String(), nil
}

func (s *system) Script(ctx context.Context, doc cv.Document, language string) (string, error) {
	prompt, err := prompts.Script(doc, language)
	if err != nil {
		return "", err
	}
	return s.text(ctx, genai.Text(prompt), nil)
}

// text runs one request with retries and returns its text.
func (s *system) text(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := retry(ctx, s.maxRetries, s.backoff, func() (*genai.GenerateContentResponse, error) {
		return s.model.Generate(ctx, contents, config)
	})
	if err != nil {
		s.logger.Error("model request failed", "error", err)
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
