// Package ollama implements the AISP fallback provider backed by a
// local Ollama instance via /api/chat.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Epiphytic/rosetta-aisp-llm/parser"
	"github.com/Epiphytic/rosetta-aisp-llm/prompt"
	"github.com/Epiphytic/rosetta-aisp-llm/provider"
)

// Defaults for a stock local install.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"

	availabilityTimeout = 2 * time.Second
)

// Client invokes an Ollama server for fallback conversions.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the server base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates an Ollama provider against a local instance.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		http:    &http.Client{Timeout: provider.DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "ollama" }

// IsAvailable pings the server root with a short timeout.
func (c *Client) IsAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), availabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message         chatMessage `json:"message"`
	EvalCount       int         `json:"eval_count"`
	PromptEvalCount int         `json:"prompt_eval_count"`
}

// Convert implements provider.Provider.
func (c *Client) Convert(ctx context.Context, req provider.Request) (*provider.Result, error) {
	if strings.TrimSpace(req.Prose) == "" {
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("%w: empty prose", provider.ErrInvalid), false)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System()},
			{Role: "user", Content: prompt.User(req)},
		},
		Stream: false,
	})
	if err != nil {
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("marshal request: %w", err), false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("create request: %w", err), false)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, provider.NewError("ollama", "convert", provider.ErrTimeout, true)
		}
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("unexpected status %d", resp.StatusCode), retryable)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("%w: decode response: %v", provider.ErrInvalid, err), false)
	}

	result := &provider.Result{
		Model:      c.model,
		TokensUsed: chat.PromptEvalCount + chat.EvalCount,
	}
	if structured, ok := parser.ExtractStructured(chat.Message.Content); ok {
		result.Output = structured.Output
		result.Confidence = structured.Confidence
	} else {
		result.Output = parser.ExtractNotation(chat.Message.Content)
	}
	if strings.TrimSpace(result.Output) == "" {
		return nil, provider.NewError("ollama", "convert",
			fmt.Errorf("%w: empty model output", provider.ErrInvalid), true)
	}
	return result, nil
}
