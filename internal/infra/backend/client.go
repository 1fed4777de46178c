// Package backend forwards occupancy updates to the central parking backend over HTTP.
package backend

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "edgeserver/internal/delivery/context"
	"edgeserver/internal/domain/service"
	"edgeserver/internal/errors"

	"github.com/go-resty/resty/v2"
)

// SyncTelemetryPath is the backend endpoint receiving occupancy updates.
const SyncTelemetryPath = "/api/spots/sync-telemetry"

// HTTPOccupancyPublisher implements OccupancyPublisher with a resty client.
type HTTPOccupancyPublisher struct {
	client *resty.Client
	logger *slog.Logger
}

// NewHTTPOccupancyPublisher creates a publisher posting to baseURL + SyncTelemetryPath.
// The response body is never read; only the status code matters.
func NewHTTPOccupancyPublisher(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPOccupancyPublisher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPOccupancyPublisher{
		client: client,
		logger: logger,
	}
}

// PublishOccupancy posts the update once, without retries.
func (p *HTTPOccupancyPublisher) PublishOccupancy(ctx context.Context, update *service.OccupancyUpdate) error {
	if update == nil {
		return errors.New("occupancy update is nil")
	}

	req := p.client.R().
		SetContext(ctx).
		SetBody(update)

	if update.RequestID != "" {
		req.SetHeader(deliverycontext.HeaderXRequestID, update.RequestID)
	}

	deliverycontext.LoggerFromContext(ctx, p.logger).Debug("Posting occupancy to backend",
		slog.String("serial", update.SerialNumber),
		slog.Bool("occupied", update.Occupied),
	)

	resp, err := req.Post(SyncTelemetryPath)
	if err != nil {
		return errors.Wrap(err, "failed to post occupancy update")
	}

	if !resp.IsSuccess() {
		return &service.UpstreamError{StatusCode: resp.StatusCode()}
	}

	return nil
}

// Close releases idle connections held by the client.
func (p *HTTPOccupancyPublisher) Close() error {
	p.client.GetClient().CloseIdleConnections()

	return nil
}
