package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agent-bridge/internal/config"
)

type capturedRequest struct {
	Auth     string
	Referer  string
	Title    string
	Path     string
	Body     map[string]any
	Messages []map[string]any
}

func fakeOpenAI(t *testing.T, status int, reply string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Auth = r.Header.Get("Authorization")
		got.Referer = r.Header.Get("HTTP-Referer")
		got.Title = r.Header.Get("X-Title")
		got.Path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got.Body)
		if msgs, ok := got.Body["messages"].([]any); ok {
			for _, m := range msgs {
				got.Messages = append(got.Messages, m.(map[string]any))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, got
}

const okReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "model": "gpt-4",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "Looks good."}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
}`

func TestOpenAIGenerate(t *testing.T) {
	ts, got := fakeOpenAI(t, http.StatusOK, okReply)
	c := NewOpenAI(Options{
		APIKey:      "sk-test",
		BaseURL:     ts.URL + "/v1/",
		Model:       "gpt-4",
		Referrer:    "https://example.test",
		Title:       "agent-bridge",
		MaxTokens:   4096,
		Temperature: 0.7,
		Timeout:     time.Second,
	})

	resp, err := c.Generate(context.Background(), Prompt("be brief", "review this"))
	require.NoError(t, err)
	require.Equal(t, "Looks good.", resp.Content)
	require.Equal(t, "gpt-4", resp.Model)
	require.Equal(t, 15, resp.TotalTokens)

	require.Equal(t, "/v1/chat/completions", got.Path)
	require.Equal(t, "Bearer sk-test", got.Auth)
	require.Equal(t, "https://example.test", got.Referer)
	require.Equal(t, "agent-bridge", got.Title)
	require.EqualValues(t, 4096, got.Body["max_tokens"])
	require.InDelta(t, 0.7, got.Body["temperature"], 0.001)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0]["role"])
	require.Equal(t, "review this", got.Messages[1]["content"])
}

func TestOpenAIEmptyChoices(t *testing.T) {
	ts, _ := fakeOpenAI(t, http.StatusOK, `{"choices": []}`)
	c := NewOpenAI(Options{BaseURL: ts.URL, Model: "gpt-4"})

	_, err := c.Generate(context.Background(), Prompt("", "hi"))
	require.ErrorIs(t, err, ErrEmptyResponse)
	require.Equal(t, "ERROR [EmptyResponse]: gpt-4: empty response from model", Describe(err))
}

func TestDescribe(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		ts, _ := fakeOpenAI(t, http.StatusTooManyRequests, `{"error": {"message": "slow down", "type": "rate_limit_error"}}`)
		_, err := NewOpenAI(Options{BaseURL: ts.URL, Model: "m"}).Generate(context.Background(), Prompt("", "hi"))
		require.Equal(t, "ERROR [RateLimit]: Rate limit exceeded: slow down", Describe(err))
	})

	t.Run("api status", func(t *testing.T) {
		ts, _ := fakeOpenAI(t, http.StatusUnauthorized, `{"error": {"message": "invalid x-api-key", "type": "authentication_error"}}`)
		_, err := NewOpenAI(Options{BaseURL: ts.URL, Model: "m"}).Generate(context.Background(), Prompt("", "hi"))
		require.Equal(t, "ERROR [API Status 401]: invalid x-api-key", Describe(err))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
		t.Cleanup(ts.Close)
		t.Cleanup(func() { close(release) })

		_, err := NewOpenAI(Options{BaseURL: ts.URL, Model: "m", Timeout: 20 * time.Millisecond}).
			Generate(context.Background(), Prompt("", "hi"))
		require.Contains(t, Describe(err), "ERROR [Timeout]: ")
	})

	t.Run("connection", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := NewOpenAI(Options{BaseURL: url, Model: "m"}).Generate(context.Background(), Prompt("", "hi"))
		require.Contains(t, Describe(err), "ERROR [Connection]: Could not connect to API: ")
	})

	t.Run("unexpected", func(t *testing.T) {
		require.Equal(t, "ERROR [Unexpected]: boom", Describe(errors.New("boom")))
	})
}

func TestFactory(t *testing.T) {
	f := NewFactory(&config.LLM{
		OpenAIAPIKey:     "sk-openai",
		AnthropicAPIKey:  "sk-ant",
		AnthropicBaseURL: "https://api.anthropic.com/v1/",
		MaxTokens:        4096,
	})

	c, err := f.CreateClient(config.ProviderOpenAI, "gpt-4")
	require.NoError(t, err)
	require.IsType(t, &OpenAIClient{}, c)

	c, err = f.CreateClient(config.ProviderAnthropic, "claude-opus-4-5-20251101")
	require.NoError(t, err)
	require.Equal(t, "claude-opus-4-5-20251101", c.(*OpenAIClient).model)

	_, err = f.CreateClient("mystery", "m")
	require.EqualError(t, err, "unknown llm provider: mystery")

	env, key := f.Credential(config.ProviderAnthropic)
	require.Equal(t, "ANTHROPIC_API_KEY", env)
	require.Equal(t, "sk-ant", key)

	env, key = f.Credential(config.ProviderOpenAI)
	require.Equal(t, "OPENAI_API_KEY", env)
	require.Equal(t, "sk-openai", key)
}
