package usecase

import (
	"context"
	"time"

	"edgeserver/internal/domain/entity"
)

// RegisterDeviceInput describes a device announced by an operator or installer.
// Type and Status are free-form and mapped leniently.
type RegisterDeviceInput struct {
	SerialNumber  string
	Model         *string
	Type          *string
	Status        *string
	ParkingID     *string
	ParkingSpotID *string
}

// BulkDeviceInput is one item of an administrative bulk insert. Type and Status must be
// exact enum names.
type BulkDeviceInput struct {
	SerialNumber string
	Model        string
	Type         entity.DeviceType
	Status       entity.DeviceStatus
	Battery      int
	LastCheckIn  *time.Time
}

// DeviceManagementUsecase covers the administrative device paths.
type DeviceManagementUsecase interface {
	// RegisterDevice returns the device with the given serial, creating it free when absent.
	RegisterDevice(ctx context.Context, input *RegisterDeviceInput) (*entity.Device, error)

	// BulkCreate inserts every item as a free device in one transaction. A serial repeated
	// in the batch is a validation failure; a serial already stored is ErrDeviceAlreadyExists.
	BulkCreate(ctx context.Context, inputs []*BulkDeviceInput) ([]*entity.Device, error)

	// DeleteDevice removes the device permanently, or fails with ErrDeviceNotFound.
	DeleteDevice(ctx context.Context, serial string) error
}
