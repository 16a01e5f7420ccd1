// Package ollama implements the Proposer port against a local Ollama server.
//
// Only the non-streaming /api/chat endpoint is used; the review loop wants
// one complete proposal per call. HTTP 429 (or a resource_exhausted body)
// classifies as domain.ErrRateLimited so the session can take its cooldown
// path; every other failure is a provider error that ends the loop.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/domain"
)

// DefaultBaseURL uses the explicit IPv4 loopback to avoid IPv6 resolution
// issues with "localhost" on some platforms.
const DefaultBaseURL = "http://127.0.0.1:11434"

// DefaultModel is used when none is configured.
const DefaultModel = "llama3.2"

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// Client implements ports.Proposer over the Ollama HTTP API.
type Client struct {
	baseURL    string
	model      string
	system     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithModel sets the model id.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithSystem sets the system instruction block sent with every prompt.
func WithSystem(system string) Option {
	return func(c *Client) {
		c.system = system
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the given base URL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckRunning verifies that the Ollama server is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status from ollama: %s", resp.Status)
	}
	return nil
}

// Propose sends the prompt as a single chat turn and returns the complete
// response text.
func (c *Client) Propose(ctx context.Context, prompt string) (string, error) {
	messages := make([]Message, 0, 2)
	if c.system != "" {
		messages = append(messages, Message{Role: "system", Content: c.system})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("proposal request timed out: %w", err)
		}
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("proposal received",
		"model", c.model,
		"elapsed", time.Since(start),
		"bytes", len(result.Message.Content),
	)
	return result.Message.Content, nil
}

// classifyStatus maps non-200 responses onto the error taxonomy. The body
// is consulted because some providers tunnel backpressure through a 500
// with a resource_exhausted message.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(snippet))

	if resp.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(strings.ToLower(detail), "resource_exhausted") {
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, resp.Status)
	}

	if detail == "" {
		detail = resp.Status
	}
	return fmt.Errorf("ollama returned %s: %s", resp.Status, detail)
}
