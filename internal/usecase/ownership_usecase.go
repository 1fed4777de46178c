package usecase

import (
	"context"

	"edgeserver/internal/domain/entity"
)

// OwnershipUsecase moves devices between the free and bound states.
type OwnershipUsecase interface {
	// BindDevice claims a device for userID. Binding a device the user already owns succeeds
	// without changes; binding a device owned by someone else fails with ErrDeviceAlreadyBound.
	BindDevice(ctx context.Context, serial, userID string) (*entity.Device, error)

	// UnbindDevice releases a device owned by userID and clears its parking association.
	// Any caller other than the current owner gets ErrDeviceOwnershipViolation, including
	// when the device is free.
	UnbindDevice(ctx context.Context, serial, userID string) (*entity.Device, error)
}
