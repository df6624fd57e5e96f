// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sheetdash/backend/internal/auth"
	"github.com/sheetdash/backend/internal/files"
	"github.com/sheetdash/backend/internal/logger"
	"github.com/sheetdash/backend/internal/workbook"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

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

// NewInternalError creates a 500 Internal Server Error. The cause is
// logged, never sent to the caller.
func NewInternalError(message string, cause error) *APIError {
	if cause != nil {
		log := logger.Get()
		log.Error().Err(cause).Msg(message)
	}
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
}

// mapFileError translates a files.Service error into its API shape.
func mapFileError(err error, id string) *APIError {
	switch {
	case errors.Is(err, files.ErrNotFound):
		return NewNotFoundError("file", id)
	case errors.Is(err, files.ErrUnsupportedType):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "UNSUPPORTED_TYPE",
			Message: "Please select CSV or Excel files only.",
		}
	case errors.Is(err, files.ErrNoDataSheets):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "NO_DATA_SHEETS",
			Message: "Excel file contains no valid data sheets.",
		}
	case errors.Is(err, workbook.ErrUnreadable):
		log := logger.Get()
		log.Error().Err(err).Str("id", id).Msg("file could not be decoded")
		return &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNREADABLE_FILE",
			Message: "Error reading file",
		}
	default:
		return NewInternalError("internal server error", err)
	}
}

// mapAuthError translates an auth.Service error into its API shape.
func mapAuthError(err error) *APIError {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &APIError{
			Status:  http.StatusUnauthorized,
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid credentials",
		}
	case errors.Is(err, auth.ErrMisconfigured):
		return &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "SERVER_MISCONFIGURED",
			Message: "Server configuration error",
		}
	default:
		return NewInternalError("internal server error", err)
	}
}

// ErrorHandler is the central Echo HTTPErrorHandler: every handler returns
// an error and this turns it into one JSON shape.
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
		// already shaped
	case errors.As(err, &httpErr):
		code := "HTTP_ERROR"
		if httpErr.Code == http.StatusUnauthorized {
			code = "UNAUTHORIZED"
		}
		apiErr = &APIError{
			Status:  httpErr.Code,
			Code:    code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		log := logger.Get()
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		}
	}

	if jsonErr := c.JSON(apiErr.Status, apiErr); jsonErr != nil {
		log := logger.Get()
		log.Error().Err(jsonErr).Msg("failed to write error response")
	}
}
