// Package design turns application descriptions into database designs by
// prompting a locally hosted model and parsing its reply.
package design

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	"github.com/EJcoding/DataAngelo/core/observability"
	"github.com/EJcoding/DataAngelo/core/prompt"
	apperrors "github.com/EJcoding/DataAngelo/core/shared/errors"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataangelo_generations_total",
			Help: "Total number of design generations by dialect and outcome",
		},
		[]string{"operation", "outcome"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataangelo_generation_duration_seconds",
			Help:    "Model round-trip duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"operation"},
	)
)

// Placeholders returned when a section cannot be extracted from the reply.
const (
	missingERDPlaceholder = "Could not extract Mermaid diagram"
	missingSQLPlaceholder = "Could not extract SQL queries"
)

// ModelClient is the slice of the Ollama client the service depends on.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is a complete database design.
type Result struct {
	ERDMermaid  string
	SQLQueries  string
	Explanation string
}

// Service orchestrates prompt rendering, the model call and section
// extraction.
type Service struct {
	client  ModelClient
	prompts *prompt.Renderer
	log     logging.Logger
}

// NewService creates a design service.
func NewService(client ModelClient, prompts *prompt.Renderer) *Service {
	return &Service{
		client:  client,
		prompts: prompts,
		log:     logging.New("design"),
	}
}

// Design generates a schema, ERD and explanation for the described
// application. databaseType may be empty; unknown dialects are rejected
// before any model call.
func (s *Service) Design(ctx context.Context, description, databaseType string) (*Result, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "description is required", nil)
	}

	dialect, err := NormalizeDialect(databaseType)
	if err != nil {
		return nil, err
	}

	promptText, err := s.prompts.Design(prompt.DesignData{
		Description:  description,
		DatabaseType: dialect,
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInternalError, "failed to build prompt", err)
	}

	s.log.Debugf("Generating %s design (%d char description)", dialect, len(description))

	reply, err := s.generate(ctx, "design", promptText)
	if err != nil {
		return nil, err
	}

	sections := ExtractSections(reply)
	if missing := sections.Missing(); len(missing) > 0 {
		s.log.Warnf("Model reply missing sections: %s", strings.Join(missing, ", "))
	}

	result := &Result{
		ERDMermaid:  sections.ERDMermaid,
		SQLQueries:  sections.SQLQueries,
		Explanation: sections.Explanation,
	}
	// Degrade per-section rather than failing the whole request: the
	// explanation falls back to the raw reply so nothing is lost.
	if result.ERDMermaid == "" {
		result.ERDMermaid = missingERDPlaceholder
	}
	if result.SQLQueries == "" {
		result.SQLQueries = missingSQLPlaceholder
	}
	if result.Explanation == "" {
		result.Explanation = strings.TrimSpace(reply)
	}

	return result, nil
}

// Validate reviews an existing design against requirements and returns
// the model's free-text feedback.
func (s *Service) Validate(ctx context.Context, designText, requirements string) (string, error) {
	if strings.TrimSpace(designText) == "" {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "design is required", nil)
	}

	promptText, err := s.prompts.Validate(prompt.ValidateData{
		Design:       designText,
		Requirements: requirements,
	})
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeInternalError, "failed to build prompt", err)
	}

	return s.generate(ctx, "validate", promptText)
}

func (s *Service) generate(ctx context.Context, operation, promptText string) (string, error) {
	start := time.Now()
	reply, err := s.client.Generate(ctx, promptText)
	elapsed := time.Since(start)
	generationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	observability.RecordGeneration(ctx, operation, err == nil, float64(elapsed.Milliseconds()))

	if err != nil {
		generationsTotal.WithLabelValues(operation, "model_unavailable").Inc()
		return "", apperrors.NewAppError(apperrors.ErrCodeModelUnavailable, "error communicating with Ollama", err)
	}
	if strings.TrimSpace(reply) == "" {
		generationsTotal.WithLabelValues(operation, "empty_reply").Inc()
		return "", apperrors.NewAppError(apperrors.ErrCodeEmptyReply, "empty response from model", nil)
	}

	generationsTotal.WithLabelValues(operation, "success").Inc()
	return reply, nil
}
