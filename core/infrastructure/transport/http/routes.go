package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EJcoding/DataAngelo/core/design"
	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/handlers"
	"github.com/EJcoding/DataAngelo/core/llm/ollama"
	"github.com/EJcoding/DataAngelo/web"
)

// RegisterRoutes registers all HTTP routes on the router.
func RegisterRoutes(
	r *chi.Mux,
	service *design.Service,
	client *ollama.Client,
	extraChecks map[string]handlers.Pinger,
	port string,
	version string,
) {
	log := logging.New("routes")

	designHandler := handlers.NewDesignHandler(service)
	modelsHandler := handlers.NewModelsHandler(client)

	checks := map[string]handlers.Pinger{"ollama": client}
	for name, check := range extraChecks {
		checks[name] = check
	}
	healthHandler := handlers.NewHealthHandler(checks)

	r.Post("/design-database", designHandler.DesignDatabase)
	r.Post("/validate-design", designHandler.ValidateDesign)
	r.Get("/models", modelsHandler.ListModels)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/docs", handlers.OpenAPIHandler(handlers.BaseURL(port), version))
	r.Method("GET", "/metrics", promhttp.Handler())

	// Embedded web client at the root.
	r.Handle("/*", web.Handler())

	log.Infof("Routes registered")
	log.Debugf("  POST /design-database")
	log.Debugf("  POST /validate-design")
	log.Debugf("  GET  /models")
	log.Debugf("  GET  /healthz")
	log.Debugf("  GET  /docs")
	log.Debugf("  GET  /metrics")
	log.Debugf("  GET  /* (web client)")
}
