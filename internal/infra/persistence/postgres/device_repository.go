// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"edgeserver/internal/domain/entity"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// FindBySerial retrieves a device by its serial number.
func (repo *deviceRepository) FindBySerial(ctx context.Context, serial string) (*entity.Device, error) {
	return repo.findBySerial(repo.db.WithContext(ctx), serial)
}

// FindBySerialForUpdate retrieves a device and holds a row lock on it until the transaction ends.
// The read is pinned to the primary.
func (repo *deviceRepository) FindBySerialForUpdate(ctx context.Context, serial string) (*entity.Device, error) {
	query := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})

	return repo.findBySerial(query, serial)
}

func (repo *deviceRepository) findBySerial(query *gorm.DB, serial string) (*entity.Device, error) {
	var deviceM model.IotDeviceModel

	if err := query.Where("serial_number = ?", serial).First(&deviceM).Error; err != nil {
		return nil, classifyError(err, "failed to find device by serial")
	}

	return toDeviceDomain(&deviceM), nil
}

// ListByOwner retrieves the devices owned by ownerID, oldest first.
func (repo *deviceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Device, error) {
	var deviceModels []*model.IotDeviceModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&deviceModels).Error; err != nil {
		return nil, classifyError(err, "failed to list devices by owner")
	}

	devices := make([]*entity.Device, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// Upsert inserts a new device or overwrites every column of an existing one.
func (repo *deviceRepository) Upsert(ctx context.Context, device *entity.Device) (*entity.Device, error) {
	deviceM := fromDeviceDomain(device)

	if deviceM.ID == 0 {
		if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
			return nil, classifyError(err, "failed to create device")
		}
	} else {
		result := repo.db.WithContext(ctx).
			Model(&model.IotDeviceModel{ID: deviceM.ID}).
			Select("*").
			Omit("id", "serial_number", "created_at").
			Updates(deviceM)
		if result.Error != nil {
			return nil, classifyError(result.Error, "failed to update device")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrDeviceNotFound
		}
	}

	// Write generated values back onto the entity
	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return device, nil
}

// UpsertAll upserts the devices in order. Callers wanting all-or-nothing run it in a transaction.
func (repo *deviceRepository) UpsertAll(ctx context.Context, devices []*entity.Device) ([]*entity.Device, error) {
	saved := make([]*entity.Device, 0, len(devices))
	for _, device := range devices {
		d, err := repo.Upsert(ctx, device)
		if err != nil {
			return nil, err
		}
		saved = append(saved, d)
	}

	return saved, nil
}

// DeleteBySerial permanently removes a device. Deleting an absent serial is not an error.
func (repo *deviceRepository) DeleteBySerial(ctx context.Context, serial string) error {
	if err := repo.db.WithContext(ctx).
		Where("serial_number = ?", serial).
		Delete(&model.IotDeviceModel{}).Error; err != nil {
		return classifyError(err, "failed to delete device")
	}

	return nil
}

// ExistsBySerial reports whether a device with the serial number exists.
func (repo *deviceRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.IotDeviceModel{}).
		Where("serial_number = ?", serial).
		Count(&count).Error; err != nil {
		return false, classifyError(err, "failed to check device existence")
	}

	return count > 0, nil
}

// Mappers

func toDeviceDomain(data *model.IotDeviceModel) *entity.Device {
	if data == nil {
		return nil
	}

	return &entity.Device{
		ID:            data.ID,
		SerialNumber:  data.SerialNumber,
		Model:         data.Model,
		Type:          entity.DeviceType(data.Type),
		Status:        entity.DeviceStatus(data.Status),
		Battery:       data.Battery,
		LastCheckIn:   data.LastCheckIn,
		OwnerID:       data.OwnerID,
		ParkingID:     data.ParkingID,
		ParkingSpotID: data.ParkingSpotID,
		SyncStatus:    entity.SyncStatus(data.SyncStatus),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromDeviceDomain(data *entity.Device) *model.IotDeviceModel {
	if data == nil {
		return nil
	}

	return &model.IotDeviceModel{
		ID:            data.ID,
		SerialNumber:  data.SerialNumber,
		Model:         data.Model,
		Type:          data.Type.String(),
		Status:        data.Status.String(),
		Battery:       data.Battery,
		LastCheckIn:   data.LastCheckIn,
		OwnerID:       data.OwnerID,
		ParkingID:     data.ParkingID,
		ParkingSpotID: data.ParkingSpotID,
		SyncStatus:    data.SyncStatus.String(),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
