// Package context carries the per-request scope shared by the HTTP and MQTT intakes:
// a request id, which is also forwarded to the backend as X-Request-Id, and a logger
// already tagged with it.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from incoming requests, echoed on responses and sent upstream.
const HeaderXRequestID = "X-Request-Id"

// LogKeyRequestID is the attribute name under which loggers record the request id.
const LogKeyRequestID = "request_id"

type scopeKey struct{}

type scope struct {
	requestID string
	logger    *slog.Logger
}

// NewRequestID generates an id for a request that arrived without one.
func NewRequestID() string {
	return uuid.NewString()
}

// WithScope returns ctx carrying requestID and base tagged with it.
func WithScope(ctx context.Context, requestID string, base *slog.Logger) (context.Context, *slog.Logger) {
	logger := base.With(slog.String(LogKeyRequestID, requestID))

	return context.WithValue(ctx, scopeKey{}, scope{requestID: requestID, logger: logger}), logger
}

func scopeFrom(ctx context.Context) (scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(scope)

	return s, ok
}

// RequestIDFromContext returns the request id, or "" outside a request scope.
func RequestIDFromContext(ctx context.Context) string {
	s, _ := scopeFrom(ctx)

	return s.requestID
}

// RequestID returns the id assigned to the echo request.
func RequestID(c echo.Context) string {
	return RequestIDFromContext(c.Request().Context())
}

// LoggerFromContext returns the request-scoped logger, or fallback outside a request scope.
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if s, ok := scopeFrom(ctx); ok && s.logger != nil {
		return s.logger
	}

	return fallback
}
