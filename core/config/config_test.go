package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, "codellama:7b", cfg.Ollama.Model)
	assert.Equal(t, 120*time.Second, cfg.Ollama.Timeout())
	assert.Equal(t, 0.1, cfg.Ollama.Temperature)
	assert.Equal(t, 0.9, cfg.Ollama.TopP)
	assert.Equal(t, 40, cfg.Ollama.TopK)
	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:5173")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`server:
  port: "9090"
  rate_limit:
    enabled: true
    redis_url: redis://localhost:6379/0
    requests: 10
    window_seconds: 30
ollama:
  model: llama3.2
  timeout_seconds: 45
prompts:
  dir: ./prompts
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)
	assert.Equal(t, 45*time.Second, cfg.Ollama.Timeout())
	assert.Equal(t, "./prompts", cfg.Prompts.Dir)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Server.RateLimit.Window())

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, 0.1, cfg.Ollama.Temperature)
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(cwd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATAANGELO_PORT", "7070")
	t.Setenv("OLLAMA_MODEL", "sqlcoder")
	t.Setenv("OLLAMA_TIMEOUT_SECONDS", "15")
	t.Setenv("DATAANGELO_CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("DATAANGELO_REDIS_URL", "redis://localhost:6379/1")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(cwd)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "sqlcoder", cfg.Ollama.Model)
	assert.Equal(t, 15*time.Second, cfg.Ollama.Timeout())
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Server.CORSOrigins)
	// Redis URL from the environment enables rate limiting.
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ollama:\n  timeout_seconds: -5\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
