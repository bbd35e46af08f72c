package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/EJcoding/DataAngelo/core/infrastructure/logging"
	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/dto"
	"github.com/EJcoding/DataAngelo/core/shared/errors"
)

// genericErrorMessage is what API clients see for any non-validation
// failure. The differentiated cause stays in logs and metrics only; the
// user's recovery path is the same either way: resubmit.
const genericErrorMessage = "Error generating database design. Please try again."

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	logger logging.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(tag string) *BaseHandler {
	return &BaseHandler{
		logger: logging.New(tag),
	}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// WriteError writes an error response. Validation errors keep their
// message; everything else is collapsed into one generic message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewAppError(errors.ErrCodeInternalError, err.Error(), err)
	}

	h.logger.PrintError("Request failed", appErr)

	message := genericErrorMessage
	if errors.IsValidationError(appErr) {
		message = appErr.Message
	}

	h.WriteJSON(w, appErr.Status, dto.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// WriteValidationError writes a field-level validation error response
func (h *BaseHandler) WriteValidationError(w http.ResponseWriter, validationErrors map[string]string) {
	details := make([]dto.ErrorDetail, 0, len(validationErrors))
	for field, tag := range validationErrors {
		details = append(details, dto.ErrorDetail{
			Field:   field,
			Tag:     tag,
			Message: "Validation failed",
		})
	}

	h.WriteJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		Success: false,
		Error:   "Validation failed",
		Details: details,
	})
}
