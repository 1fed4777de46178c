// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"edgeserver/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when no device has the requested serial number.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDuplicateDevice is returned when an insert collides with an existing serial number.
	ErrDuplicateDevice = errors.New("device already exists")
)

// DeviceRepository is the device store. Every operation is atomic on a single device;
// multi-step read-modify-write sequences belong inside TransactionManager.Execute.
// I/O failures surface as domain errors matching errors.ErrStoreUnavailable.
type DeviceRepository interface {
	// FindBySerial retrieves a device by serial number, or ErrDeviceNotFound.
	FindBySerial(ctx context.Context, serial string) (*entity.Device, error)

	// FindBySerialForUpdate is FindBySerial that also locks the device until the
	// surrounding transaction ends.
	FindBySerialForUpdate(ctx context.Context, serial string) (*entity.Device, error)

	// ListByOwner retrieves the devices whose owner is exactly ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Device, error)

	// Upsert inserts the device when its ID is zero and updates it otherwise.
	// ID, CreatedAt and UpdatedAt are written back onto the given device.
	Upsert(ctx context.Context, device *entity.Device) (*entity.Device, error)

	// UpsertAll upserts every device in order.
	UpsertAll(ctx context.Context, devices []*entity.Device) ([]*entity.Device, error)

	// DeleteBySerial removes the device. Deleting an absent serial is a no-op.
	DeleteBySerial(ctx context.Context, serial string) error

	// ExistsBySerial reports whether a device with the serial number is stored.
	ExistsBySerial(ctx context.Context, serial string) (bool, error)
}
