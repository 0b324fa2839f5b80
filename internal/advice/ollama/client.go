// Package ollama implements the advice.Generator contract against a local
// Ollama instance. It is the default advisory backend: no API key, no cloud.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sortinghat-ai/sortinghat/internal/advice"

	"go.uber.org/zap"
)

const (
	DefaultModel   = "codellama:34b"
	DefaultBaseURL = "http://localhost:11434"

	defaultTimeout = 120 * time.Second
	probeTimeout   = 5 * time.Second
)

// Client talks to the Ollama HTTP API. One generation attempt per call, no
// retries: a failed request must fall back to the local heuristic path.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(model, baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

func (c *Client) Model() string {
	return c.model
}

// IsAvailable checks whether the Ollama server answers on its tags endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("ollama server not reachable", zap.String("base_url", c.baseURL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	System string `json:"system,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	// Done is a pointer so an absent field reads as finished.
	Done *bool `json:"done"`
}

// Generate sends a non-streaming generation request and returns the full
// response.
func (c *Client) Generate(ctx context.Context, prompt, system string) (*advice.Response, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		System: system,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach ollama at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %s", resp.Status)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}

	model := body.Model
	if model == "" {
		model = c.model
	}
	done := body.Done == nil || *body.Done

	return &advice.Response{Text: body.Response, Model: model, Done: done}, nil
}
