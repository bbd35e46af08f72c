package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/dto"
	"github.com/EJcoding/DataAngelo/core/llm/ollama"
)

// modelsTimeout bounds the tags call so an unreachable Ollama surfaces
// as an error instead of a hang.
const modelsTimeout = 10 * time.Second

// ModelLister lists the models available on the inference host.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
}

// ModelsHandler serves GET /models.
type ModelsHandler struct {
	*BaseHandler
	client ModelLister
}

// NewModelsHandler creates a models handler.
func NewModelsHandler(client ModelLister) *ModelsHandler {
	return &ModelsHandler{
		BaseHandler: NewBaseHandler("models"),
		client:      client,
	}
}

// ListModels handles GET /models.
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), modelsTimeout)
	defer cancel()

	models, err := h.client.ListModels(ctx)
	if err != nil {
		h.WriteJSON(w, http.StatusBadGateway, dto.ErrorResponse{
			Success: false,
			Error:   "Could not connect to Ollama. Make sure it's running.",
		})
		return
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}

	h.WriteJSON(w, http.StatusOK, dto.ModelsResponse{AvailableModels: names})
}
