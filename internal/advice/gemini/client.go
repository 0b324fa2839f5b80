// Package gemini implements the advice.Generator contract on top of the
// Google GenAI SDK, for callers who prefer a hosted model over local Ollama.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sortinghat-ai/sortinghat/internal/advice"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Generator wraps the GenAI client to provide simple prompt-based
// interactions against the Gemini API backend.
type Generator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGenerator(ctx context.Context, apiKey, model string, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{client: client, model: model, logger: log}, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// IsAvailable reports whether the generator holds an initialized client. The
// Gemini API has no cheap reachability probe; connectivity failures surface
// from Generate and degrade to the local path there.
func (g *Generator) IsAvailable(context.Context) bool {
	return g != nil && g.client != nil
}

// Generate sends the prompt to Gemini and returns the concatenated textual
// response.
func (g *Generator) Generate(ctx context.Context, prompt, system string) (*advice.Response, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	var config *genai.GenerateContentConfig
	if system = strings.TrimSpace(system); system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return nil, errors.New("gemini api returned empty response")
	}

	return &advice.Response{Text: output, Model: g.model, Done: true}, nil
}
