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
)

func TestClient_Defaults(t *testing.T) {
	client := New()
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, DefaultTimeout, client.timeout)
}

func TestClient_WithOptions(t *testing.T) {
	client := New(
		WithBaseURL("http://ollama.internal:11434/"),
		WithModel("llama3.2"),
		WithTimeout(30*time.Second),
		WithOptions(GenerateOptions{Temperature: 0.1, TopP: 0.9, TopK: 40}),
	)

	// Trailing slash is trimmed so paths join cleanly.
	assert.Equal(t, "http://ollama.internal:11434", client.baseURL)
	assert.Equal(t, "llama3.2", client.Model())
	assert.Equal(t, 30*time.Second, client.timeout)
	require.NotNil(t, client.options)
	assert.Equal(t, 0.1, client.options.Temperature)
}

func TestClient_Generate(t *testing.T) {
	var captured GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(GenerateResponse{
			Model:    captured.Model,
			Response: "## ERD (Mermaid)\n...",
			Done:     true,
		})
	}))
	defer server.Close()

	client := New(
		WithBaseURL(server.URL),
		WithModel("codellama:7b"),
		WithOptions(GenerateOptions{Temperature: 0.1, TopP: 0.9, TopK: 40}),
	)

	reply, err := client.Generate(context.Background(), "design a schema")
	require.NoError(t, err)
	assert.Equal(t, "## ERD (Mermaid)\n...", reply)

	assert.Equal(t, "codellama:7b", captured.Model)
	assert.Equal(t, "design a schema", captured.Prompt)
	assert.False(t, captured.Stream)
	require.NotNil(t, captured.Options)
	assert.Equal(t, 40, captured.Options.TopK)
}

func TestClient_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	_, err := client.Generate(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_GenerateUnreachable(t *testing.T) {
	// Port 1 is never listening locally; the call must fail fast, not hang.
	client := New(WithBaseURL("http://127.0.0.1:1"), WithTimeout(2*time.Second))

	start := time.Now()
	_, err := client.Generate(context.Background(), "anything")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(TagsResponse{
			Models: []ModelInfo{
				{Name: "codellama:7b"},
				{Name: "llama3.2"},
			},
		})
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "codellama:7b", models[0].Name)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		w.Write([]byte(`{"version":"0.5.4"}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	assert.NoError(t, client.Ping(context.Background()))

	server.Close()
	assert.Error(t, client.Ping(context.Background()))
}
