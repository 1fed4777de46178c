package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edgeserver/config"
	deliverycontext "edgeserver/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_ReusesHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ctxID string
	var ctxLogger *slog.Logger
	handler := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).Process(func(c echo.Context) error {
		ctxID = deliverycontext.RequestIDFromContext(c.Request().Context())
		ctxLogger = deliverycontext.LoggerFromContext(c.Request().Context(), nil)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "req-1", ctxID)
	assert.Equal(t, "req-1", deliverycontext.RequestID(c))
	assert.Equal(t, "req-1", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.NotNil(t, ctxLogger)
}

func TestRequestIDMiddleware_GeneratesWhenMissingOrOversized(t *testing.T) {
	for _, incoming := range []string{"", strings.Repeat("x", maxRequestIDLength+1)} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		if incoming != "" {
			req.Header.Set(deliverycontext.HeaderXRequestID, incoming)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).Process(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, handler(c))
		got := rec.Header().Get(deliverycontext.HeaderXRequestID)
		assert.Len(t, got, 36)
		assert.NotEqual(t, incoming, got)
	}
}

func TestLoggerMiddleware_LogsLevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/iot/devices?userId=alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewLoggerMiddleware(logger, cfg).Handle(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "HTTP Request", entry["msg"])
	assert.InDelta(t, http.StatusNotFound, entry["status"], 0)
	assert.Equal(t, "userId=alice", entry["query"])
}

func TestLoggerMiddleware_DisabledWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewLoggerMiddleware(logger, &config.Config{}).Handle(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Empty(t, buf.String())
}
