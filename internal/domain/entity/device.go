package entity

import (
	"strings"
	"time"

	domainerrors "edgeserver/internal/domain/errors"
)

const (
	// MinBattery and MaxBattery bound the battery percentage a device may report.
	MinBattery = 0
	MaxBattery = 100

	// MaxIdentifierLength bounds serial numbers, owner ids and parking ids.
	MaxIdentifierLength = 64
	// MaxModelLength bounds the hardware model name.
	MaxModelLength = 100

	// DefaultBattery is assumed for devices that have not reported a level yet.
	DefaultBattery = 100

	// DiscoveredModel is the model recorded for devices created from their first telemetry report.
	DiscoveredModel = "Auto-Discovered"
	// UnknownModel is the model recorded when a registration does not name one.
	UnknownModel = "Unknown"
)

// Device is a sensor, camera or other IoT device known to the gateway, together with its
// ownership and last-known telemetry. A device with a nil OwnerID is free.
//
// Transitions (Bind, Unbind, RecordCheckIn, WithSyncStatus) never modify the receiver;
// they return the next state.
type Device struct {
	ID            int64        // Store-assigned identifier. Zero until first persisted.
	SerialNumber  string       // Unique, immutable after creation.
	Model         string       // Hardware model.
	Type          DeviceType   // Hardware classification.
	Status        DeviceStatus // Last observed operational status.
	Battery       int          // Battery percentage in [0,100].
	LastCheckIn   time.Time    // Time of the last telemetry report.
	OwnerID       *string      // User that claimed the device; nil when free.
	ParkingID     *string      // Parking lot association; only meaningful while owned.
	ParkingSpotID *string      // Parking spot association; only meaningful while owned.
	SyncStatus    SyncStatus   // Outcome of the last upstream occupancy push.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewFreeDevice builds an unpersisted device with no owner, no spatial association and
// a DISCONNECTED sync status.
func NewFreeDevice(serial, model string, deviceType DeviceType, status DeviceStatus, battery int, lastCheckIn, now time.Time) Device {
	return Device{
		SerialNumber: serial,
		Model:        model,
		Type:         deviceType,
		Status:       status,
		Battery:      battery,
		LastCheckIn:  lastCheckIn,
		SyncStatus:   SyncStatusDisconnected,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewDiscoveredDevice builds the device created when telemetry arrives for an unknown serial.
func NewDiscoveredDevice(serial string, battery *int, now time.Time) Device {
	level := DefaultBattery
	if battery != nil {
		level = *battery
	}

	return NewFreeDevice(serial, DiscoveredModel, DeviceTypeSensor, DeviceStatusOnline, level, now, now)
}

// IsBound reports whether the device has an owner.
func (d Device) IsBound() bool {
	return d.OwnerID != nil
}

// IsBoundToUser reports whether the device is owned by userID.
func (d Device) IsBoundToUser(userID string) bool {
	return d.OwnerID != nil && *d.OwnerID == userID
}

// Bind returns the device owned by userID. Spatial fields are left as they are.
func (d Device) Bind(userID string, now time.Time) (Device, error) {
	if strings.TrimSpace(userID) == "" {
		return d, domainerrors.ErrValidationFailed.WrapMessage("user id must not be blank")
	}

	owner := userID
	d.OwnerID = &owner
	d.touch(now)

	return d, nil
}

// Unbind returns the device released from its owner, with its spatial association cleared.
func (d Device) Unbind(now time.Time) Device {
	d.OwnerID = nil
	d.ParkingID = nil
	d.ParkingSpotID = nil
	d.touch(now)

	return d
}

// Reading is the subset of a telemetry report that is stored on the device.
type Reading struct {
	Status    *DeviceStatus
	Battery   *int
	CheckedAt *time.Time
}

// RecordCheckIn merges a telemetry reading into the device. Present fields overwrite
// stored ones; LastCheckIn is always refreshed, to CheckedAt when given or now otherwise.
func (d Device) RecordCheckIn(r Reading, now time.Time) Device {
	if r.Battery != nil {
		d.Battery = *r.Battery
	}
	if r.Status != nil {
		d.Status = *r.Status
	}
	if r.CheckedAt != nil {
		d.LastCheckIn = *r.CheckedAt
	} else {
		d.LastCheckIn = now
	}
	d.touch(now)

	return d
}

// WithSyncStatus returns the device carrying the given upstream sync status.
func (d Device) WithSyncStatus(status SyncStatus, now time.Time) Device {
	d.SyncStatus = status
	d.touch(now)

	return d
}

// Validate checks the invariants every stored device must satisfy.
func (d Device) Validate() error {
	switch {
	case strings.TrimSpace(d.SerialNumber) == "":
		return domainerrors.ErrValidationFailed.WrapMessage("serial number is required")
	case strings.TrimSpace(d.Model) == "":
		return domainerrors.ErrValidationFailed.WrapMessage("model is required")
	case !ValidIdentifier(d.SerialNumber):
		return domainerrors.ErrValidationFailed.WrapMessage("serial number exceeds 64 characters")
	case len(d.Model) > MaxModelLength:
		return domainerrors.ErrValidationFailed.WrapMessage("model exceeds 100 characters")
	case !validOptionalIdentifier(d.OwnerID), !validOptionalIdentifier(d.ParkingID), !validOptionalIdentifier(d.ParkingSpotID):
		return domainerrors.ErrValidationFailed.WrapMessage("owner and parking ids must not exceed 64 characters")
	case !d.Type.IsValid():
		return domainerrors.ErrValidationFailed.WrapMessage("unknown device type " + d.Type.String())
	case !d.Status.IsValid():
		return domainerrors.ErrValidationFailed.WrapMessage("unknown device status " + d.Status.String())
	case !d.SyncStatus.IsValid():
		return domainerrors.ErrValidationFailed.WrapMessage("unknown sync status " + d.SyncStatus.String())
	case !ValidBattery(d.Battery):
		return domainerrors.ErrValidationFailed.WrapMessage("battery must be between 0 and 100")
	case d.OwnerID == nil && (d.ParkingID != nil || d.ParkingSpotID != nil):
		return domainerrors.ErrValidationFailed.WrapMessage("a free device cannot carry a parking association")
	case d.UpdatedAt.Before(d.CreatedAt):
		return domainerrors.ErrValidationFailed.WrapMessage("updatedAt precedes createdAt")
	}

	return nil
}

// ValidBattery reports whether level is a valid battery percentage.
func ValidBattery(level int) bool {
	return level >= MinBattery && level <= MaxBattery
}

// ValidIdentifier reports whether id fits the storage width of serial numbers and user ids.
func ValidIdentifier(id string) bool {
	return len(id) <= MaxIdentifierLength
}

func validOptionalIdentifier(id *string) bool {
	return id == nil || ValidIdentifier(*id)
}

// touch advances UpdatedAt; it never moves backwards.
func (d *Device) touch(now time.Time) {
	if now.After(d.UpdatedAt) {
		d.UpdatedAt = now
	}
}
