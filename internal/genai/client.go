// Package genai implements the text generation provider used to produce
// movie trivia. It talks to an OpenAI-compatible chat-completions endpoint
// over plain HTTP: the request carries a fixed movie-expert system
// instruction, a bounded completion length, and a non-zero temperature so
// forced regenerations can differ.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tbourn/go-movie-facts-backend/internal/config"
)

const (
	// systemPrompt fixes the persona and shape of every generated fact.
	systemPrompt = "You are a movie expert. Generate interesting, lesser-known facts about specific movies. " +
		"Keep responses to 2-3 sentences and make them engaging and factual."

	// fallbackFact is returned when the provider answers with empty content.
	fallbackFact = "No fact generated."
)

// ErrNotConfigured is returned when the provider credential is missing.
// The service boots without a key; generation requests surface this instead.
var ErrNotConfigured = errors.New("openai api key is not configured")

// HTTPError is a non-2xx response from the provider.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

// chatRequest is the chat-completions request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single prompt message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls an OpenAI-compatible chat-completions API.
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpc       *http.Client
}

// NewClient constructs a Client from configuration. An empty API key is
// accepted here; calls will then fail with ErrNotConfigured.
func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpc:       &http.Client{Timeout: cfg.Timeout},
	}
}

// FactAboutMovie asks the provider for a short piece of trivia about
// movieTitle. The title is interpolated verbatim into the user instruction.
// An empty completion falls back to a placeholder rather than an error.
func (c *Client) FactAboutMovie(ctx context.Context, movieTitle string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Tell me an interesting and lesser-known fact about the movie %q.", movieTitle)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Cap the echoed body; provider errors can be verbose.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		return fallbackFact, nil
	}
	fact := strings.TrimSpace(out.Choices[0].Message.Content)
	if fact == "" {
		return fallbackFact, nil
	}
	return fact, nil
}
