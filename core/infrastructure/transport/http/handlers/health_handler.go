package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/dto"
)

const healthCheckTimeout = 5 * time.Second

// Pinger checks reachability of one dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler serves GET /healthz with per-dependency checks.
type HealthHandler struct {
	*BaseHandler
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler over named dependency checks.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler("health"),
		checks:      checks,
	}
}

// Healthz handles GET /healthz. Dependency checks run concurrently; a
// failing dependency degrades the report but the endpoint itself stays
// 200 as long as the process is serving.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for name, pinger := range h.checks {
		g.Go(func() error {
			status := "ok"
			if err := pinger.Ping(ctx); err != nil {
				status = err.Error()
			}
			mu.Lock()
			results[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := "healthy"
	for _, v := range results {
		if v != "ok" {
			status = "degraded"
			break
		}
	}

	h.WriteJSON(w, http.StatusOK, dto.HealthResponse{
		Status:  status,
		Message: "DataAngelo is running!",
		Checks:  results,
	})
}
