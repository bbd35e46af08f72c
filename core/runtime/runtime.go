package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EJcoding/DataAngelo/core/config"
	"github.com/EJcoding/DataAngelo/core/design"
	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	transporthttp "github.com/EJcoding/DataAngelo/core/infrastructure/transport/http"
	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/handlers"
	"github.com/EJcoding/DataAngelo/core/llm/ollama"
	"github.com/EJcoding/DataAngelo/core/observability"
	"github.com/EJcoding/DataAngelo/core/prompt"
)

// Runtime wires the design service, model client, and HTTP server together
// and owns their lifecycle.
type Runtime struct {
	cfg       *config.Config
	version   string
	client    *ollama.Client
	prompts   *prompt.Renderer
	service   *design.Service
	server    *transporthttp.Server
	redis     *redis.Client
	providers *observability.Providers

	watch       bool
	watchCancel context.CancelFunc
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithPromptWatch enables hot reload of prompt templates from the
// configured prompts directory.
func WithPromptWatch(enabled bool) Option {
	return func(r *Runtime) {
		r.watch = enabled
	}
}

// NewRuntime assembles all components from the configuration.
func NewRuntime(cfg *config.Config, version string, opts ...Option) (*Runtime, error) {
	rt := &Runtime{cfg: cfg, version: version}
	for _, opt := range opts {
		opt(rt)
	}

	providers, err := observability.Setup(context.Background(), version)
	if err != nil {
		return nil, fmt.Errorf("observability setup: %w", err)
	}
	rt.providers = providers

	rt.client = ollama.New(
		ollama.WithBaseURL(cfg.Ollama.URL),
		ollama.WithModel(cfg.Ollama.Model),
		ollama.WithTimeout(cfg.Ollama.Timeout()),
		ollama.WithOptions(ollama.GenerateOptions{
			Temperature: cfg.Ollama.Temperature,
			TopP:        cfg.Ollama.TopP,
			TopK:        cfg.Ollama.TopK,
		}),
	)

	rt.prompts, err = prompt.NewRenderer(cfg.Prompts.Dir)
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}

	rt.service = design.NewService(rt.client, rt.prompts)

	extraChecks := map[string]handlers.Pinger{}
	if cfg.Server.RateLimit.Enabled {
		redisOpts, err := redis.ParseURL(cfg.Server.RateLimit.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		rt.redis = redis.NewClient(redisOpts)
		extraChecks["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return rt.redis.Ping(ctx).Err()
		})
	}

	rt.server = transporthttp.NewServer(cfg, rt.redis)
	transporthttp.RegisterRoutes(rt.server.Router(), rt.service, rt.client, extraChecks, cfg.Server.Port, version)

	return rt, nil
}

// Service exposes the design service, used by one-shot CLI commands.
func (r *Runtime) Service() *design.Service {
	return r.service
}

// Client exposes the underlying model client.
func (r *Runtime) Client() *ollama.Client {
	return r.client
}

// Start starts the server and blocks until SIGINT/SIGTERM.
func (r *Runtime) Start() error {
	if err := r.StartAsync(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return r.Stop()
}

// StartAsync starts the server without blocking.
func (r *Runtime) StartAsync() error {
	log := logging.New("runtime")

	if r.watch {
		if r.cfg.Prompts.Dir == "" {
			log.Warn("Prompt watch requested but no prompts directory configured, skipping")
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			r.watchCancel = cancel
			go func() {
				if err := r.prompts.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Errorf("Prompt watcher stopped: %v", err)
				}
			}()
			log.Infof("Watching prompt templates in %s", r.cfg.Prompts.Dir)
		}
	}

	return r.server.StartAsync()
}

// Stop shuts everything down gracefully.
func (r *Runtime) Stop() error {
	log := logging.New("runtime")

	if r.watchCancel != nil {
		r.watchCancel()
		r.watchCancel = nil
	}

	err := r.server.Stop()

	if r.redis != nil {
		if closeErr := r.redis.Close(); closeErr != nil {
			log.Warnf("Error closing Redis client: %v", closeErr)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := r.providers.Shutdown(ctx); shutdownErr != nil {
		log.Warnf("Error shutting down telemetry: %v", shutdownErr)
	}

	return err
}
