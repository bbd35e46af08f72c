package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Domain errors
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnknownDialect  ErrorCode = "UNKNOWN_DIALECT"

	// Application errors
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrCodeEmptyReply       ErrorCode = "EMPTY_MODEL_REPLY"

	// Infrastructure errors
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with code and context
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Status  int // HTTP status code
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Status:  getHTTPStatus(code),
	}
}

// getHTTPStatus maps error codes to HTTP status codes
func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeValidationError, ErrCodeUnknownDialect:
		return http.StatusBadRequest
	case ErrCodeModelUnavailable:
		return http.StatusBadGateway
	case ErrCodeGenerationFailed, ErrCodeEmptyReply:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeValidationError || appErr.Code == ErrCodeInvalidInput || appErr.Code == ErrCodeUnknownDialect
	}
	return false
}

// IsModelUnavailable checks if the error indicates the model runtime
// could not be reached.
func IsModelUnavailable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeModelUnavailable
	}
	return false
}
