package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{
		AI: config.AIConfig{
			BaseURL:        baseURL,
			APIKey:         "test-key",
			Model:          "gpt-4o-mini",
			RequestTimeout: 5 * time.Second,
		},
	}
	return NewClient(cfg, zap.NewNop()).(*Client)
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 500, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "suggest something", req.Messages[0].Content)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"an idea"}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	out, err := client.Complete(context.Background(), "suggest something", 500)
	require.NoError(t, err)
	assert.Equal(t, "an idea", out)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", 100)
	assert.Error(t, err)
}
