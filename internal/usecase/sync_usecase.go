package usecase

import (
	"context"

	"edgeserver/internal/domain/entity"
)

// SyncUsecase pushes occupancy to the central backend and records the outcome on the device.
type SyncUsecase interface {
	// PushOccupancy forwards the occupancy of one device and returns the resulting sync
	// status. It never fails: upstream and store errors are logged and absorbed.
	PushOccupancy(ctx context.Context, serial string, occupied bool) entity.SyncStatus
}
