package handler

import (
	"log/slog"
	"net/http"

	"edgeserver/internal/delivery/api/response"
	"edgeserver/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TelemetryHandlerParams holds dependencies for TelemetryHandler, injected by Fx.
type TelemetryHandlerParams struct {
	fx.In

	TelemetryUC usecase.TelemetryUsecase
	Logger      *slog.Logger
}

// TelemetryHandler accepts sensor reports over HTTP.
type TelemetryHandler struct {
	telemetryUC usecase.TelemetryUsecase
	logger      *slog.Logger
}

// NewTelemetryHandler is the constructor for TelemetryHandler
func NewTelemetryHandler(params TelemetryHandlerParams) *TelemetryHandler {
	return &TelemetryHandler{
		telemetryUC: params.TelemetryUC,
		logger:      params.Logger,
	}
}

// Ingest records a report and answers 202 once it is stored. The upstream sync outcome
// never changes the response.
func (h *TelemetryHandler) Ingest(c echo.Context) error {
	var req TelemetryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.telemetryUC.Ingest(c.Request().Context(), req.toReport()); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

// HealthCheck is the liveness probe.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, HealthResponse{Status: "ok"})
}
