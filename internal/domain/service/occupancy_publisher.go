package service

import (
	"context"
	"strconv"
)

// OccupancyUpdate is the occupancy state of one parking-spot sensor, as sent upstream.
type OccupancyUpdate struct {
	SerialNumber string `json:"serialNumber"`
	Occupied     bool   `json:"occupied"`

	// RequestID correlates the push with the inbound request; sent as a header, not in the body.
	RequestID string `json:"-"`
}

// OccupancyPublisher forwards occupancy updates to the central backend.
type OccupancyPublisher interface {
	// PublishOccupancy delivers one update. It returns an *UpstreamError when the
	// backend answered with a non-2xx status and a wrapped transport error otherwise.
	PublishOccupancy(ctx context.Context, update *OccupancyUpdate) error
}

// UpstreamError reports a response from the backend outside the 2xx range.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return "upstream backend responded with status " + strconv.Itoa(e.StatusCode)
}
