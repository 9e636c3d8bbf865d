// Package ai is the gateway to the OpenAI-compatible provider configured in
// the settings row. It exposes the three passthrough operations the API
// offers: optimize, run, and analyze. Each call blocks on the upstream
// request for at most the client timeout; there is no retry.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"promptbox/internal/models"
)

// ErrNotConfigured is returned by every operation when no provider API key
// has been saved in the settings.
var ErrNotConfigured = errors.New("ai: provider API key not configured")

// ErrUnsupportedKind is returned by Run for task kinds other than
// "text" and "image".
var ErrUnsupportedKind = errors.New("ai: unsupported task kind")

// Defaults for text generation when the request parameters omit them.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultImageModel  = "dall-e-3"
)

// Client talks to a chat-completion and image-generation HTTP API. It is
// built per request from the current settings row, so key or base-URL
// changes take effect immediately.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New creates a client from the stored settings.
func New(s *models.Settings) *Client {
	baseURL := s.OpenAIBaseURL
	if baseURL == "" {
		baseURL = models.DefaultBaseURL
	}
	model := s.OpenAIModel
	if model == "" {
		model = models.DefaultModel
	}
	return &Client{
		apiKey:  s.APIKey(),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Optimize rewrites the prompt through the provider using the stored
// system template, or the built-in default when none is saved.
func (c *Client) Optimize(ctx context.Context, prompt, template string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if template == "" {
		template = models.DefaultOptimizeTemplate
	}

	return c.doChat(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: template},
			{Role: "user", Content: prompt},
		},
		Temperature: defaultTemperature,
	})
}

// RunInput carries a prompt execution request. Kind selects between text
// generation and image generation; Model overrides the settings default.
type RunInput struct {
	Prompt     string
	Parameters models.ParamMap
	Kind       string
	Model      string
}

// Run executes the prompt. For text it returns the generated completion;
// for image it returns the URL of the generated image.
func (c *Client) Run(ctx context.Context, in RunInput) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	switch in.Kind {
	case models.ProjectTypeText:
		model := in.Model
		if model == "" {
			model = c.model
		}
		return c.doChat(ctx, chatRequest{
			Model:       model,
			Messages:    []chatMessage{{Role: "user", Content: in.Prompt}},
			Temperature: floatParam(in.Parameters, "temperature", defaultTemperature),
			MaxTokens:   intParam(in.Parameters, "max_tokens", defaultMaxTokens),
		})
	case models.ProjectTypeImage:
		model := in.Model
		if model == "" {
			model = defaultImageModel
		}
		return c.doImage(ctx, imageRequest{
			Model:   model,
			Prompt:  in.Prompt,
			N:       1,
			Size:    "1024x1024",
			Quality: "standard",
		})
	default:
		return "", ErrUnsupportedKind
	}
}

// doChat performs the HTTP call to the chat completions endpoint and
// returns the first choice's message content.
func (c *Client) doChat(ctx context.Context, body chatRequest) (string, error) {
	respBody, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ai unmarshal: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ai: no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}

// doImage performs the HTTP call to the image generations endpoint and
// returns the URL of the first generated image.
func (c *Client) doImage(ctx context.Context, body imageRequest) (string, error) {
	respBody, err := c.post(ctx, "/images/generations", body)
	if err != nil {
		return "", err
	}

	var result imageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ai unmarshal: %w", err)
	}
	if len(result.Data) == 0 {
		return "", fmt.Errorf("ai: no images returned")
	}
	return result.Data[0].URL, nil
}

// post sends an authenticated JSON request and returns the raw response
// body. Non-200 statuses surface the upstream body in the error text.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ai marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ai read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// floatParam reads a numeric parameter, tolerating JSON's float64 and
// integer decodings.
func floatParam(m models.ParamMap, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// intParam reads an integer parameter. JSON numbers decode as float64.
func intParam(m models.ParamMap, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

// --- OpenAI-compatible request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []imageData `json:"data"`
}

type imageData struct {
	URL string `json:"url"`
}
