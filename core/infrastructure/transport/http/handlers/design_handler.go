package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/EJcoding/DataAngelo/core/design"
	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/dto"
	"github.com/EJcoding/DataAngelo/core/shared/errors"
)

// DesignHandler serves /design-database and /validate-design.
type DesignHandler struct {
	*BaseHandler
	service  *design.Service
	validate *validator.Validate
}

// NewDesignHandler creates a design handler.
func NewDesignHandler(service *design.Service) *DesignHandler {
	return &DesignHandler{
		BaseHandler: NewBaseHandler("design"),
		service:     service,
		validate:    validator.New(),
	}
}

// DesignDatabase handles POST /design-database.
func (h *DesignHandler) DesignDatabase(w http.ResponseWriter, r *http.Request) {
	var req dto.DesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, errors.NewAppError(errors.ErrCodeInvalidInput, "invalid JSON body", err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.WriteValidationError(w, validationFieldErrors(err))
		return
	}

	result, err := h.service.Design(r.Context(), req.Description, req.DatabaseType)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.DesignResponse{
		ERDMermaid:  result.ERDMermaid,
		SQLQueries:  result.SQLQueries,
		Explanation: result.Explanation,
	})
}

// ValidateDesign handles POST /validate-design.
func (h *DesignHandler) ValidateDesign(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, errors.NewAppError(errors.ErrCodeInvalidInput, "invalid JSON body", err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.WriteValidationError(w, validationFieldErrors(err))
		return
	}

	feedback, err := h.service.Validate(r.Context(), req.Design, req.Requirements)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.ValidateDesignResponse{
		ValidationFeedback: feedback,
	})
}

func validationFieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return fields
}
