package ai

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// Model is the generative backend behind System.
type Model interface {
	Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Stream(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

type geminiModel struct {
	client *genai.Client
	name   string
}

// NewGeminiModel creates a Model backed by the Gemini API.
func NewGeminiModel(ctx context.Context, cfg *Config) (Model, error) {
	if !cfg.Configured() {
		return unconfigured{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiModel{client: client, name: cfg.Model}, nil
}

func (m *geminiModel) Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.client.Models.GenerateContent(ctx, m.name, contents, config)
}

func (m *geminiModel) Stream(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return m.client.Models.GenerateContentStream(ctx, m.name, contents, config)
}

// unconfigured fails every call so the service runs without an API key.
type unconfigured struct{}

func (unconfigured) Generate(context.Context, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, ErrNotConfigured
}

func (unconfigured) Stream(context.Context, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		yield(nil, ErrNotConfigured)
	}
}
