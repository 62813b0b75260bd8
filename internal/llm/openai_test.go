package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, status int, body string, seen *map[string]any) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider("test-key", server.URL+"/v1", "gpt-4o-mini")
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var seen map[string]any
	p := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Hello there  "}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
	}`, &seen)

	req := UserPrompt("You are a consultant.", "Write a summary.")
	req.JSON = true
	req.MaxTokens = 100
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Hello there", resp.Content)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 3, resp.Usage.OutputTokens)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	format, ok := seen["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIProvider_Length(t *testing.T) {
	p := newOpenAITestServer(t, http.StatusOK, `{
		"object": "chat.completion",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "cut"}, "finish_reason": "length"}]
	}`, nil)

	resp, err := p.Generate(context.Background(), UserPrompt("", "x"))
	require.NoError(t, err)
	assert.Equal(t, "max_tokens", resp.StopReason)
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	p := newOpenAITestServer(t, http.StatusOK, `{"object": "chat.completion", "choices": []}`, nil)

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newOpenAITestServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "slow down", "type": "rate_limit_error"}}`, nil)

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	p := newOpenAITestServer(t, http.StatusInternalServerError,
		`{"error": {"message": "boom", "type": "server_error"}}`, nil)

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var unavailable *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "gpt-4o-mini")
	assert.Error(t, err)
}
