package usecase

import (
	"context"
	"time"
)

// HealthMonitor carries device self-diagnostics. It is accepted on telemetry but not stored.
type HealthMonitor struct {
	FailuresSinceStartup     *int     `json:"failuresSinceStartup,omitempty"`
	FailuresSinceLastCheckup *int     `json:"failuresSinceLastCheckup,omitempty"`
	RequestsSinceLastCheckup *int     `json:"requestsSinceLastCheckup,omitempty"`
	RequestsSinceStartup     *int     `json:"requestsSinceStartup,omitempty"`
	FailingRate              *float64 `json:"failingRate,omitempty"`
}

// TelemetryReport is one periodic report from a sensor. Nil fields were not reported.
type TelemetryReport struct {
	SerialNumber  string
	Status        *string
	Battery       *int
	CheckedAt     *time.Time
	Occupied      *bool
	HealthMonitor *HealthMonitor
}

// TelemetryUsecase ingests sensor reports.
type TelemetryUsecase interface {
	// Ingest records the report on the device, creating the device when the serial is
	// unknown, and then forwards occupancy upstream when the report carries it.
	// Upstream failures never make Ingest fail.
	Ingest(ctx context.Context, report *TelemetryReport) error
}
