package backend

import (
	"context"
	"log/slog"

	"edgeserver/config"
	"edgeserver/internal/domain/service"
	"edgeserver/internal/errors"

	"go.uber.org/fx"
)

// PublisherParams holds dependencies for OccupancyPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewOccupancyPublisher creates the backend client from backend.main.url and backend.sync.timeout.
func NewOccupancyPublisher(params PublisherParams) (service.OccupancyPublisher, error) {
	cfg := params.Config.Backend
	if cfg.Main.URL == "" {
		return nil, errors.New("backend.main.url is required")
	}

	logger := params.Logger.With(slog.String("component", "backend"))
	publisher := NewHTTPOccupancyPublisher(cfg.Main.URL, cfg.Sync.Timeout, logger)

	logger.Info("Occupancy updates will be forwarded",
		slog.String("endpoint", cfg.Main.URL+SyncTelemetryPath),
		slog.Duration("timeout", cfg.Sync.Timeout),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing backend client")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the backend client FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewOccupancyPublisher),
)
