package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caddan/ordna/pkg/adapters/ollama"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropose_SendsSystemAndPrompt(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Stream   bool   `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "PLAN:\ncall tool 'create_directory' with args {'path':'X'}"},
		})
	}))
	defer srv.Close()

	c := ollama.New(srv.URL,
		ollama.WithModel("llama3.2"),
		ollama.WithSystem("you organize files"),
	)

	text, err := c.Propose(context.Background(), "organize this")
	require.NoError(t, err)
	assert.Contains(t, text, "PLAN:")

	assert.Equal(t, "llama3.2", received.Model)
	assert.False(t, received.Stream)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "user", received.Messages[1].Role)
	assert.Equal(t, "organize this", received.Messages[1].Content)
}

func TestPropose_ClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := ollama.New(srv.URL).Propose(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestPropose_ClassifiesResourceExhaustedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"RESOURCE_EXHAUSTED: quota"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := ollama.New(srv.URL).Propose(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestPropose_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := ollama.New(srv.URL).Propose(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
	assert.Contains(t, err.Error(), "model not found")
}

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, ollama.New(srv.URL).CheckRunning(context.Background()))

	srv.Close()
	assert.Error(t, ollama.New(srv.URL).CheckRunning(context.Background()))
}
