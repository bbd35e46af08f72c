// Package http assembles the chi router, middleware stack and HTTP
// server lifecycle.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/EJcoding/DataAngelo/core/config"
	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	httpmiddleware "github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	port   string
}

// NewServer creates the HTTP server with the shared middleware stack.
// redisClient may be nil, in which case rate limiting is skipped. Route
// registration is separate so tests can assemble routers directly.
func NewServer(cfg *config.Config, redisClient *redis.Client) *Server {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// The request timeout must outlive the model call, which is bounded
	// separately by the Ollama client timeout.
	r.Use(middleware.Timeout(cfg.Ollama.Timeout() + 10*time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(httpmiddleware.Tracing)
	r.Use(httpmiddleware.Metrics)

	if cfg.Server.RateLimit.Enabled && redisClient != nil {
		limiter := httpmiddleware.NewRedisRateLimiter(redisClient)
		r.Use(httpmiddleware.RateLimitByIP(limiter, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window()))
	}

	return &Server{
		router: r,
		port:   cfg.Server.Port,
	}
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// StartAsync starts the HTTP server without blocking
func (s *Server) StartAsync() error {
	log := logging.New("http")

	s.server = &http.Server{
		Addr:        ":" + s.port,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No write timeout: design generation responses are written only
		// after a model round trip that can take minutes.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("DataAngelo listening on http://127.0.0.1:%s", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop() error {
	log := logging.New("http")
	log.Infof("Shutting down HTTP server")

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
		if closeErr := s.server.Close(); closeErr != nil {
			log.Errorf("Error force closing HTTP server: %v", closeErr)
		}
		return err
	}

	log.Infof("HTTP server stopped")
	return nil
}
