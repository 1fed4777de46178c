package model

import (
	"time"
)

// IotDeviceModel is the GORM-specific struct for the 'iot_devices' table.
// UpdatedAt is owned by the domain, so GORM must not touch it on save.
type IotDeviceModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	SerialNumber  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_iot_devices_serial_number"`
	Model         string    `gorm:"type:varchar(100);not null"`
	Type          string    `gorm:"type:varchar(20);not null"`
	Status        string    `gorm:"type:varchar(20);not null"`
	Battery       int       `gorm:"not null;check:chk_iot_devices_battery,battery >= 0 AND battery <= 100"`
	LastCheckIn   time.Time `gorm:"not null"`
	OwnerID       *string   `gorm:"type:varchar(64);index:idx_iot_devices_owner_id"`
	ParkingID     *string   `gorm:"type:varchar(64)"`
	ParkingSpotID *string   `gorm:"type:varchar(64)"`
	SyncStatus    string    `gorm:"type:varchar(20);not null;default:DISCONNECTED"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (IotDeviceModel) TableName() string {
	return "iot_devices"
}
