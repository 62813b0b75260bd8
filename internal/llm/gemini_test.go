package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestServer(t *testing.T, status int, body string, path *string) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path != nil {
			*path = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), "test-key", server.URL, "gemini-2.0-flash")
	require.NoError(t, err)
	return p
}

func TestGeminiProvider_Generate(t *testing.T) {
	var path string
	p := newGeminiTestServer(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "Strong start."}]}, "finishReason": "STOP"}],
		"usageMetadata": {"promptTokenCount": 20, "candidatesTokenCount": 4, "totalTokenCount": 24}
	}`, &path)

	resp, err := p.Generate(context.Background(), UserPrompt("system", "prompt"))
	require.NoError(t, err)

	assert.Equal(t, "Strong start.", resp.Content)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, 20, resp.Usage.InputTokens)
	assert.Equal(t, 24, resp.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "gemini-2.0-flash:generateContent"), path)
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newGeminiTestServer(t, http.StatusTooManyRequests,
		`{"error": {"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}`, nil)

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestGeminiProvider_Unavailable(t *testing.T) {
	p := newGeminiTestServer(t, http.StatusServiceUnavailable,
		`{"error": {"code": 503, "message": "down", "status": "UNAVAILABLE"}}`, nil)

	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var unavailable *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}
