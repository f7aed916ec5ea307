package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

func chatServer(t *testing.T, reply string, check func(r chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.False(t, req.Stream)
		if check != nil {
			check(req)
		}

		resp := chatResponse{
			Message:         chatMessage{Role: "assistant", Content: reply},
			EvalCount:       25,
			PromptEvalCount: 100,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestConvertPlainReply(t *testing.T) {
	srv := chatServer(t, "∀x∈S: x≡y", func(req chatRequest) {
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "for all x in S")
	})
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithModel("llama3.2"))
	result, err := c.Convert(context.Background(), provider.Request{
		Prose: "for all x in S, x equals y",
		Tier:  tier.Standard,
	})
	require.NoError(t, err)

	assert.Equal(t, "∀x∈S: x≡y", result.Output)
	assert.Nil(t, result.Confidence)
	assert.Equal(t, "llama3.2", result.Model)
	assert.Equal(t, 125, result.TokensUsed)
}

func TestConvertStructuredReply(t *testing.T) {
	srv := chatServer(t, "```json\n{\"output\": \"x≜5\", \"confidence\": 0.85}\n```", nil)
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	result, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	require.NoError(t, err)

	assert.Equal(t, "x≜5", result.Output)
	require.NotNil(t, result.Confidence)
	assert.Equal(t, 0.85, *result.Confidence)
}

func TestConvertServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	require.Error(t, err)
	assert.True(t, provider.IsRetryable(err))
}

func TestConvertUnreachableServer(t *testing.T) {
	c := New(WithBaseURL("http://127.0.0.1:1"), WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestConvertEmptyProse(t *testing.T) {
	c := New()
	_, err := c.Convert(context.Background(), provider.Request{Prose: ""})
	assert.ErrorIs(t, err, provider.ErrInvalid)
}

func TestConvertEmptyReply(t *testing.T) {
	srv := chatServer(t, "   ", nil)
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.Convert(context.Background(), provider.Request{Prose: "define x as 5"})
	assert.ErrorIs(t, err, provider.ErrInvalid)
}

func TestIsAvailable(t *testing.T) {
	srv := chatServer(t, "x", nil)
	c := New(WithBaseURL(srv.URL))
	assert.True(t, c.IsAvailable())

	srv.Close()
	assert.False(t, c.IsAvailable())
}

func TestRegisteredFactory(t *testing.T) {
	p, err := provider.New("ollama", provider.Config{
		BaseURL: "http://example.test:11434",
		Model:   "mistral",
	})
	require.NoError(t, err)

	c, ok := p.(*Client)
	require.True(t, ok)
	assert.Equal(t, "http://example.test:11434", c.baseURL)
	assert.Equal(t, "mistral", c.model)
}
