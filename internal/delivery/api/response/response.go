// Package response writes JSON bodies for the HTTP API.
package response

import (
	"net/http"

	deliverycontext "edgeserver/internal/delivery/context"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message   string `json:"message"`           // User-friendly error message
	Code      string `json:"code"`              // Machine-readable error code, e.g. "VALIDATION_FAILED"
	Details   string `json:"details,omitempty"` // Additional context, 4xx only
	RequestID string `json:"requestId"`
}

// JSON writes data as the response body without an envelope.
func JSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if statusCode >= http.StatusInternalServerError {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Message:   message,
		Code:      errorCode,
		Details:   details,
		RequestID: deliverycontext.RequestID(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}

// HandleAppError writes the response for an application error. Errors that are not
// AppErrors are returned unchanged for the HTTP error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), detailsOf(err, appErr))
	}

	return errors.WithStack(err)
}

// detailsOf prefers explicit details and falls back to the wrapping context of err.
func detailsOf(err error, appErr domainerrors.AppError) string {
	if appErr.Details() != "" {
		return appErr.Details()
	}
	if msg := err.Error(); msg != appErr.Message() {
		return msg
	}

	return ""
}
