package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// fakeRunner replaces the CLI with canned output.
func fakeRunner(out []byte, err error) func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return out, err
	}
}

func cliJSON(t *testing.T, result string, structured any) []byte {
	t.Helper()
	resp := map[string]any{
		"type":    "result",
		"subtype": "success",
		"result":  result,
		"usage":   map[string]int{"input_tokens": 120, "output_tokens": 30},
	}
	if structured != nil {
		resp["structured_output"] = structured
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return data
}

func TestConvertStructuredOutput(t *testing.T) {
	c := New(WithModel("haiku"))
	c.runner = fakeRunner(cliJSON(t, "ignored text", map[string]any{
		"notation":   "∀x∈S: x≡y",
		"confidence": 0.9,
	}), nil)

	result, err := c.Convert(context.Background(), provider.Request{
		Prose: "for all x in S, x equals y",
		Tier:  tier.Standard,
	})
	require.NoError(t, err)

	assert.Equal(t, "∀x∈S: x≡y", result.Output)
	require.NotNil(t, result.Confidence)
	assert.Equal(t, 0.9, *result.Confidence)
	assert.Equal(t, "haiku", result.Model)
	assert.Equal(t, 150, result.TokensUsed)
}

func TestConvertTextFallbackWithCodeBlock(t *testing.T) {
	c := New()
	c.runner = fakeRunner(cliJSON(t, "Here's the conversion:\n```\nx≜5\n```", nil), nil)

	result, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	require.NoError(t, err)

	assert.Equal(t, "x≜5", result.Output)
	assert.Nil(t, result.Confidence)
}

func TestConvertOutOfRangeConfidenceDropped(t *testing.T) {
	c := New()
	c.runner = fakeRunner(cliJSON(t, "", map[string]any{
		"notation":   "x≜5",
		"confidence": 1.7,
	}), nil)

	result, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	require.NoError(t, err)

	assert.Equal(t, "x≜5", result.Output)
	assert.Nil(t, result.Confidence, "confidence outside [0,1] must be discarded")
}

func TestConvertEmptyProse(t *testing.T) {
	c := New()
	c.runner = fakeRunner(nil, errors.New("must not run"))

	_, err := c.Convert(context.Background(), provider.Request{Prose: "  "})
	assert.ErrorIs(t, err, provider.ErrInvalid)
}

func TestConvertCLIError(t *testing.T) {
	c := New()
	resp := `{"type":"result","subtype":"error_during_execution","is_error":true,"result":"rate limited"}`
	c.runner = fakeRunner([]byte(resp), nil)

	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	require.Error(t, err)
	assert.True(t, provider.IsRetryable(err))
}

func TestConvertMalformedJSON(t *testing.T) {
	c := New()
	c.runner = fakeRunner([]byte("not json at all"), nil)

	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrInvalid)
}

func TestConvertMissingBinary(t *testing.T) {
	c := New(WithPath("definitely-not-a-real-binary-xyz"))
	c.runner = fakeRunner(nil, fmt.Errorf("lookup: %w", exec.ErrNotFound))

	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestConvertTimeout(t *testing.T) {
	c := New(WithTimeout(time.Millisecond))
	c.runner = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrTimeout)
}

func TestConvertEmptyModelOutput(t *testing.T) {
	c := New()
	c.runner = fakeRunner(cliJSON(t, "   ", nil), nil)

	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrInvalid)
}

func TestBuildArgs(t *testing.T) {
	c := New(WithModel("opus"))
	args := c.buildArgs(provider.Request{Prose: "define x as 5", Tier: tier.Full})

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-p")
	assert.Contains(t, joined, "--output-format json")
	assert.Contains(t, joined, "--model opus")
	assert.Contains(t, joined, "--max-turns 1")
	assert.Contains(t, joined, "--no-session-persistence")
	assert.Contains(t, joined, "--json-schema")
	assert.Contains(t, args[len(args)-1], "define x as 5", "prompt is the final positional arg")
}

func TestBuildArgsWithoutSchema(t *testing.T) {
	c := New(WithoutSchema())
	args := c.buildArgs(provider.Request{Prose: "x"})
	assert.NotContains(t, strings.Join(args, " "), "--json-schema")
}

func TestConversionSchemaShape(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(ConversionSchema()), &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "notation")
	assert.Contains(t, props, "confidence")
}

func TestRegisteredFactory(t *testing.T) {
	p, err := provider.New("claude", provider.Config{Model: "haiku"})
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name())

	c, ok := p.(*CLI)
	require.True(t, ok)
	assert.Equal(t, "haiku", c.model)
}
