package summarizer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-client/internal/config"
	"notes-client/internal/model"
)

func TestNew_NoAPIKey(t *testing.T) {
	_, err := New(&config.ConfigSummarizer{}, nil)
	assert.ErrorIs(t, err, model.ErrServiceUnavailable)

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, model.ErrServiceUnavailable)
}

func TestSummarize_Success(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  ## The Gist\nNotes.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	s, err := New(&config.ConfigSummarizer{BaseURL: srv.URL + "/v1/", APIKey: "secret", Model: "test-model"}, nil)
	require.NoError(t, err)

	text, err := s.Summarize(t.Context(), "write a notes client in Go")
	require.NoError(t, err)

	assert.Equal(t, "## The Gist\nNotes.", text)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "write a notes client in Go", got.Messages[1].Content)
}

func TestSummarize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model is loading","type":"server_error"}}`))
	}))
	defer srv.Close()

	s, err := New(&config.ConfigSummarizer{BaseURL: srv.URL, APIKey: "secret", Model: "m", MaxTokens: 10}, nil)
	require.NoError(t, err)

	_, err = s.Summarize(t.Context(), "text")
	assert.ErrorIs(t, err, model.ErrServiceUnavailable)
}
