package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		if captured != nil {
			payload, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			*captured = string(payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIGeneratorReturnsFirstChoice(t *testing.T) {
	var request string
	server := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  <score>7</score> solid  "}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`, &request)

	generator, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1", Logger: zerolog.Nop()})
	require.NoError(t, err)

	output, err := generator.Generate(context.Background(), "grade this")
	require.NoError(t, err)
	require.Equal(t, "<score>7</score> solid", output)

	var sent struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(request), &sent))
	require.Equal(t, "gpt-4o-mini", sent.Model)
	require.Len(t, sent.Messages, 1)
	require.Equal(t, "grade this", sent.Messages[0].Content)
}

func TestOpenAIGeneratorPropagatesUpstreamErrors(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusInternalServerError, `{"error": {"message": "boom", "type": "server_error"}}`, nil)

	generator, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "prompt")
	require.Error(t, err)
}

func TestOpenAIGeneratorRejectsEmptyChoices(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion", "choices": []}`, nil)

	generator, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator(OpenAIConfig{})
	require.Error(t, err)
}
