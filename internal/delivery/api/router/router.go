// Package router contains routing for the HTTP API.
package router

import (
	"edgeserver/internal/delivery/api/middleware"
	"edgeserver/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers registered on the API, injected by Fx.
type RouterParams struct {
	fx.In

	DeviceHandler    *handler.DeviceHandler
	TelemetryHandler *handler.TelemetryHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	deviceHandler    *handler.DeviceHandler
	telemetryHandler *handler.TelemetryHandler
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		deviceHandler:    params.DeviceHandler,
		telemetryHandler: params.TelemetryHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	iot := e.Group("/api/iot")

	// Sensor-facing routes, no caller identity.
	iot.POST("/telemetry", r.telemetryHandler.Ingest)
	iot.POST("/devices", r.deviceHandler.RegisterDevice)

	devicesGroup := iot.Group("/devices")
	{
		// Administrative
		devicesGroup.POST("/bulk", r.deviceHandler.BulkCreateDevices)
		devicesGroup.DELETE("/:serial", r.deviceHandler.DeleteDevice)

		// Bind names its user in the body.
		devicesGroup.POST("/:serial/bind", r.deviceHandler.BindDevice)

		// Owner-scoped
		devicesGroup.GET("", r.deviceHandler.GetUserDevices, middleware.RequireUserID)
		devicesGroup.GET("/kpis", r.deviceHandler.GetDeviceKpis, middleware.RequireUserID)
		devicesGroup.DELETE("/:serial/bind", r.deviceHandler.UnbindDevice, middleware.RequireUserID)
	}
}
