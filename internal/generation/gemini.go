package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiGenerator streams replies from the Gemini API
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) GenerateStream(ctx context.Context, model, prompt string) Stream {
	it := g.client.GenerativeModel(model).GenerateContentStream(ctx, genai.Text(prompt))
	return &geminiStream{it: it}
}

// ModelInfo describes one model available to the configured key
type ModelInfo struct {
	Name             string
	DisplayName      string
	InputTokenLimit  int32
	OutputTokenLimit int32
	Methods          []string
}

// ListModels returns the models that support content generation
func (g *GeminiGenerator) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	it := g.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}

		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				out = append(out, ModelInfo{
					Name:             strings.TrimPrefix(m.Name, "models/"),
					DisplayName:      m.DisplayName,
					InputTokenLimit:  m.InputTokenLimit,
					OutputTokenLimit: m.OutputTokenLimit,
					Methods:          m.SupportedGenerationMethods,
				})
				break
			}
		}
	}
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

type geminiStream struct {
	it      *genai.GenerateContentResponseIterator
	pending []string
}

func (s *geminiStream) Next() (string, error) {
	for len(s.pending) == 0 {
		resp, err := s.it.Next()
		if errors.Is(err, iterator.Done) {
			return "", ErrStreamDone
		}
		if err != nil {
			return "", err
		}
		s.pending = responseText(resp)
	}

	fragment := s.pending[0]
	s.pending = s.pending[1:]
	return fragment, nil
}

func responseText(resp *genai.GenerateContentResponse) []string {
	var parts []string
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok && t != "" {
				parts = append(parts, string(t))
			}
		}
	}
	return parts
}
