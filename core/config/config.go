package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no --file
// flag is given.
const DefaultConfigFile = ".dataangelo.yaml"

// Config holds the full service configuration. Precedence is CLI flags >
// environment variables > config file > defaults.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Prompts PromptsConfig `yaml:"prompts"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port        string          `yaml:"port"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures optional Redis-backed IP rate limiting.
// Disabled unless a Redis URL is configured.
type RateLimitConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RedisURL      string `yaml:"redis_url"`
	Requests      int    `yaml:"requests"`
	WindowSeconds int    `yaml:"window_seconds"`
}

// Window returns the rate limit window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// OllamaConfig configures the model runtime endpoint and sampling options.
type OllamaConfig struct {
	URL            string  `yaml:"url"`
	Model          string  `yaml:"model"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Temperature    float64 `yaml:"temperature"`
	TopP           float64 `yaml:"top_p"`
	TopK           int     `yaml:"top_k"`
}

// Timeout returns the model call timeout as a duration.
func (o OllamaConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// PromptsConfig points at an optional directory of prompt template
// overrides. Empty means the embedded templates are used.
type PromptsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level int `yaml:"level"`
}

// Default returns the built-in configuration. Sampling options match the
// low-temperature settings used for consistent technical output.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			CORSOrigins: []string{
				"http://localhost",
				"http://localhost:8080",
				"http://localhost:5173",
			},
			RateLimit: RateLimitConfig{
				Enabled:       false,
				Requests:      30,
				WindowSeconds: 60,
			},
		},
		Ollama: OllamaConfig{
			URL:            "http://localhost:11434",
			Model:          "codellama:7b",
			TimeoutSeconds: 120,
			Temperature:    0.1,
			TopP:           0.9,
			TopK:           40,
		},
		Log: LogConfig{
			Level: 3,
		},
	}
}

// Load builds the configuration from the optional YAML file at path and
// the environment. A missing file at the default path is not an error; an
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrideString("DATAANGELO_PORT", &c.Server.Port)
	overrideString("PORT", &c.Server.Port)
	overrideString("OLLAMA_URL", &c.Ollama.URL)
	overrideString("OLLAMA_MODEL", &c.Ollama.Model)
	overrideInt("OLLAMA_TIMEOUT_SECONDS", &c.Ollama.TimeoutSeconds)
	overrideFloat("OLLAMA_TEMPERATURE", &c.Ollama.Temperature)
	overrideFloat("OLLAMA_TOP_P", &c.Ollama.TopP)
	overrideInt("OLLAMA_TOP_K", &c.Ollama.TopK)
	overrideString("DATAANGELO_PROMPTS_DIR", &c.Prompts.Dir)
	overrideInt("DATAANGELO_LOG_LEVEL", &c.Log.Level)
	overrideString("DATAANGELO_REDIS_URL", &c.Server.RateLimit.RedisURL)
	overrideInt("DATAANGELO_RATE_LIMIT_REQUESTS", &c.Server.RateLimit.Requests)
	overrideInt("DATAANGELO_RATE_LIMIT_WINDOW_SECONDS", &c.Server.RateLimit.WindowSeconds)

	if origins := os.Getenv("DATAANGELO_CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		c.Server.CORSOrigins = c.Server.CORSOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, p)
			}
		}
	}

	// A configured Redis URL switches rate limiting on unless it was
	// explicitly disabled in the config file.
	if c.Server.RateLimit.RedisURL != "" {
		c.Server.RateLimit.Enabled = true
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	if c.Ollama.URL == "" {
		return fmt.Errorf("ollama.url must not be empty")
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("ollama.model must not be empty")
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		return fmt.Errorf("ollama.timeout_seconds must be positive, got %d", c.Ollama.TimeoutSeconds)
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RedisURL == "" {
			return fmt.Errorf("server.rate_limit.redis_url is required when rate limiting is enabled")
		}
		if c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.WindowSeconds <= 0 {
			return fmt.Errorf("server.rate_limit requests and window must be positive")
		}
	}
	return nil
}

// LoadEnvFiles attempts to load .env files from multiple locations.
// It tries each location in order and stops at the first successful load.
// Priority order:
// 1. From the provided directory (if not empty)
// 2. From the current working directory
// 3. From the directory containing the executable binary
// System environment variables always take precedence over .env file values.
func LoadEnvFiles(fromDir string) {
	envFiles := []string{".env.local", ".env.development", ".env"}

	if fromDir != "" {
		for _, envFile := range envFiles {
			envPath := filepath.Join(fromDir, envFile)
			if err := godotenv.Load(envPath); err == nil {
				return
			}
		}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			return
		}
	}

	if execPath, err := os.Executable(); err == nil {
		if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = realPath
		}
		execDir := filepath.Dir(execPath)
		for _, envFile := range envFiles {
			envPath := filepath.Join(execDir, envFile)
			if err := godotenv.Load(envPath); err == nil {
				return
			}
		}
	}
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideInt(name string, target *int) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err == nil {
		*target = parsed
	}
}

func overrideFloat(name string, target *float64) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err == nil {
		*target = parsed
	}
}
