// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/models"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("validation failed for field: %s", field),
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// decodeStatus maps decode error kinds to HTTP status codes. Kinds that are
// not listed are format errors and map to 422.
var decodeStatus = map[models.ErrorKind]int{
	models.KindEmptyInput:     http.StatusBadRequest,
	models.KindInvalidSymbol:  http.StatusBadRequest,
	models.KindUnknownDungeon: http.StatusNotFound,
}

// NewDecodeError converts a decode pipeline error into an APIError whose
// code is the error kind.
func NewDecodeError(err error) *APIError {
	var de *models.DecodeError
	if !errors.As(err, &de) {
		return NewInternalError("decode failed", err)
	}

	status, ok := decodeStatus[de.Kind]
	if !ok {
		status = http.StatusUnprocessableEntity
	}
	apiErr := &APIError{
		Status:  status,
		Code:    string(de.Kind),
		Message: de.Message,
	}
	if de.Offset >= 0 {
		offset := de.Offset
		apiErr.Offset = &offset
	}
	if de.Err != nil {
		apiErr.Details = de.Err.Error()
	}
	return apiErr
}

// exposeDetails controls whether unexpected errors include their text.
var exposeDetails = true

// SetExposeErrorDetails toggles internal error details in responses.
func SetExposeErrorDetails(on bool) {
	exposeDetails = on
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		apiErr  *APIError
		httpErr *echo.HTTPError
		decErr  *models.DecodeError
	)

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &decErr):
		apiErr = NewDecodeError(decErr)
	case errors.As(err, &httpErr):
		apiErr = &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
		}
		if exposeDetails {
			apiErr.Details = err.Error()
		}
	}

	c.JSON(apiErr.Status, apiErr)
}

// RespondWithError is a helper to respond with an APIError
func RespondWithError(c echo.Context, err *APIError) error {
	return c.JSON(err.Status, err)
}
