package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

func TestNew_Defaults(t *testing.T) {
	b := New(Config{})

	assert.Equal(t, DefaultModel, b.ModelName())
	assert.Equal(t, "ollama", b.Name())
}

func TestGenerate(t *testing.T) {
	var gotReq generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(generateResponse{
			Response: "Employment contracts require written form.",
			Done:     true,
		})
	}))
	defer server.Close()

	b := New(Config{BaseURL: server.URL, Model: "llama3:8b"})

	answer, err := b.Generate(context.Background(), "system text", "user question", driven.GenerateOptions{
		MaxTokens:   200,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Employment contracts require written form.", answer)
	assert.Equal(t, "llama3:8b", gotReq.Model)
	assert.Equal(t, "user question", gotReq.Prompt)
	assert.Equal(t, "system text", gotReq.System)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 200, gotReq.Options.NumPredict)
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	b := New(Config{BaseURL: server.URL})

	_, err := b.Generate(context.Background(), "", "hello", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerate_ErrorInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	defer server.Close()

	b := New(Config{BaseURL: server.URL})

	_, err := b.Generate(context.Background(), "", "hello", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	b := New(Config{BaseURL: server.URL})
	require.NoError(t, b.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	b := New(Config{BaseURL: "http://127.0.0.1:1"})
	require.Error(t, b.Ping(context.Background()))
}
