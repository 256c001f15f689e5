package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-chat-be/pkg/genai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"The answer is 42."}}]}`))
	}))
	defer srv.Close()

	p := NewProvider("test-key", srv.URL, "test-model", time.Second)
	reply, err := p.Complete(context.Background(), "what is the answer?")
	require.NoError(t, err)

	assert.Equal(t, "The answer is 42.", reply)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "what is the answer?", gotBody.Messages[0].Content)
}

func TestCompleteMissingKey(t *testing.T) {
	p := NewProvider("", "http://unused", "m", time.Second)
	_, err := p.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, genai.ErrMissingCredential)
}

func TestCompleteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	p := NewProvider("key", srv.URL, "m", time.Second)
	_, err := p.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCompleteApiErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer srv.Close()

	p := NewProvider("key", srv.URL, "m", time.Second)
	_, err := p.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewProvider("key", srv.URL, "m", time.Second)
	reply, err := p.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestNewProviderDefaults(t *testing.T) {
	p := NewProvider("key", "", "", 0)
	assert.Equal(t, defaultBaseURL, p.baseURL)
	assert.Equal(t, defaultModel, p.model)
	assert.Equal(t, 60*time.Second, p.client.Timeout)
}
