// Package claude implements the AISP fallback provider backed by the
// Claude CLI binary.
//
// Conversion requests run in print mode with JSON output, one turn, no
// session persistence. Structured output is requested via --json-schema
// so the model reports its own confidence alongside the notation.
package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Epiphytic/rosetta-aisp-llm/parser"
	"github.com/Epiphytic/rosetta-aisp-llm/prompt"
	"github.com/Epiphytic/rosetta-aisp-llm/provider"
)

// DefaultModel is the model alias used when none is configured.
const DefaultModel = "sonnet"

// CLI invokes the claude binary for fallback conversions.
type CLI struct {
	path    string
	model   string
	timeout time.Duration
	workdir string

	// disableSchema turns off --json-schema structured output and
	// falls back to parsing notation out of the text reply.
	disableSchema bool

	// runner executes the prepared command. Tests swap this out.
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Option configures a CLI client.
type Option func(*CLI)

// WithPath sets the path to the claude binary.
func WithPath(path string) Option {
	return func(c *CLI) { c.path = path }
}

// WithModel sets the model alias (haiku, sonnet, opus) or full model name.
func WithModel(model string) Option {
	return func(c *CLI) { c.model = model }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *CLI) { c.timeout = d }
}

// WithWorkdir sets the working directory for claude invocations.
func WithWorkdir(dir string) Option {
	return func(c *CLI) { c.workdir = dir }
}

// WithoutSchema disables structured output. The reply is then parsed
// with the notation extractor instead.
func WithoutSchema() Option {
	return func(c *CLI) { c.disableSchema = true }
}

// New creates a Claude CLI provider.
// Assumes "claude" is on PATH unless overridden with WithPath.
func New(opts ...Option) *CLI {
	c := &CLI{
		path:    "claude",
		model:   DefaultModel,
		timeout: provider.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = c.runCommand
	}
	return c
}

// Name implements provider.Provider.
func (c *CLI) Name() string { return "claude" }

// IsAvailable reports whether the claude binary can be found.
func (c *CLI) IsAvailable() bool {
	_, err := exec.LookPath(c.path)
	return err == nil
}

// cliResponse is the JSON envelope printed by claude --output-format json.
type cliResponse struct {
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	IsError          bool            `json:"is_error"`
	Result           string          `json:"result"`
	StructuredOutput json.RawMessage `json:"structured_output,omitempty"`
	Usage            cliUsage        `json:"usage"`
}

type cliUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Convert implements provider.Provider.
func (c *CLI) Convert(ctx context.Context, req provider.Request) (*provider.Result, error) {
	if strings.TrimSpace(req.Prose) == "" {
		return nil, provider.NewError("claude", "convert",
			fmt.Errorf("%w: empty prose", provider.ErrInvalid), false)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := c.buildArgs(req)
	out, err := c.runner(ctx, c.path, args...)
	if err != nil {
		return nil, c.mapExecError(ctx, err, out)
	}

	resp, err := parseResponse(out)
	if err != nil {
		return nil, provider.NewError("claude", "convert",
			fmt.Errorf("%w: %v", provider.ErrInvalid, err), false)
	}
	if resp.IsError {
		return nil, provider.NewError("claude", "convert",
			fmt.Errorf("cli reported error: %s", firstLine(resp.Result)), true)
	}

	result := c.extractResult(resp)
	if strings.TrimSpace(result.Output) == "" {
		return nil, provider.NewError("claude", "convert",
			fmt.Errorf("%w: empty model output", provider.ErrInvalid), true)
	}
	return result, nil
}

// buildArgs assembles the CLI invocation for a conversion request.
func (c *CLI) buildArgs(req provider.Request) []string {
	args := []string{
		"-p",
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", "1",
		"--no-session-persistence",
		"--disable-slash-commands",
		"--strict-mcp-config",
		"--tools", "",
		"--system-prompt", prompt.System(),
	}
	if !c.disableSchema {
		args = append(args, "--json-schema", ConversionSchema())
	}
	args = append(args, prompt.User(req))
	return args
}

// runCommand executes the binary and returns its combined output.
func (c *CLI) runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if c.workdir != "" {
		cmd.Dir = c.workdir
	}
	cmd.Stdin = nil
	return cmd.Output()
}

// mapExecError translates exec failures into provider errors.
func (c *CLI) mapExecError(ctx context.Context, err error, out []byte) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return provider.NewError("claude", "convert", provider.ErrTimeout, true)
	case errors.Is(err, exec.ErrNotFound):
		return provider.NewError("claude", "convert",
			fmt.Errorf("%w: binary %q not found", provider.ErrUnavailable, c.path), false)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := firstLine(string(exitErr.Stderr))
		if detail == "" {
			detail = firstLine(string(out))
		}
		slog.Debug("claude cli exited nonzero",
			"code", exitErr.ExitCode(), "detail", detail)
		return provider.NewError("claude", "convert",
			fmt.Errorf("exit %d: %s", exitErr.ExitCode(), detail), true)
	}
	return provider.NewError("claude", "convert", err, false)
}

// parseResponse decodes the JSON envelope from the CLI output.
func parseResponse(out []byte) (*cliResponse, error) {
	var resp cliResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Type != "result" {
		return nil, fmt.Errorf("unexpected response type %q", resp.Type)
	}
	return &resp, nil
}

// extractResult pulls the notation and confidence out of a successful
// response. Structured output wins; otherwise the text result is run
// through the notation extractor.
func (c *CLI) extractResult(resp *cliResponse) *provider.Result {
	result := &provider.Result{
		Model:      c.model,
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}

	if len(resp.StructuredOutput) > 0 {
		var conv ConversionOutput
		if err := json.Unmarshal(resp.StructuredOutput, &conv); err == nil && conv.Notation != "" {
			result.Output = strings.TrimSpace(conv.Notation)
			if conv.Confidence != nil && *conv.Confidence >= 0 && *conv.Confidence <= 1 {
				result.Confidence = conv.Confidence
			}
			return result
		}
		slog.Debug("structured output unusable, falling back to text parse")
	}

	if structured, ok := parser.ExtractStructured(resp.Result); ok {
		result.Output = structured.Output
		result.Confidence = structured.Confidence
		return result
	}
	result.Output = parser.ExtractNotation(resp.Result)
	return result
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
