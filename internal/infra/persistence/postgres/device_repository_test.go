package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var deviceColumns = []string{
	"id", "serial_number", "model", "type", "status", "battery", "last_check_in",
	"owner_id", "parking_id", "parking_spot_id", "sync_status", "created_at", "updated_at",
}

var fixtureTime = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return sqlDB, mock, db
}

func deviceRow(rows *sqlmock.Rows, id int64, serial string, owner any) *sqlmock.Rows {
	return rows.AddRow(id, serial, "PS-100", "SENSOR", "ONLINE", 64, fixtureTime,
		owner, nil, nil, "CONNECTED", fixtureTime, fixtureTime)
}

func TestDeviceRepository_FindBySerial(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "iot_devices" WHERE serial_number = \$1`).
		WillReturnRows(deviceRow(sqlmock.NewRows(deviceColumns), 3, "SENSOR-001", "alice"))

	device, err := repo.FindBySerial(context.Background(), "SENSOR-001")
	require.NoError(t, err)

	assert.Equal(t, int64(3), device.ID)
	assert.Equal(t, entity.DeviceTypeSensor, device.Type)
	assert.Equal(t, entity.SyncStatusConnected, device.SyncStatus)
	require.NotNil(t, device.OwnerID)
	assert.Equal(t, "alice", *device.OwnerID)
	assert.Nil(t, device.ParkingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_FindBySerial_NotFound(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "iot_devices"`).WillReturnRows(sqlmock.NewRows(deviceColumns))

	_, err := repo.FindBySerial(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrDeviceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_FindBySerialForUpdate_LocksRow(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "iot_devices" WHERE serial_number = \$1 .*FOR UPDATE`).
		WillReturnRows(deviceRow(sqlmock.NewRows(deviceColumns), 3, "SENSOR-001", nil))

	device, err := repo.FindBySerialForUpdate(context.Background(), "SENSOR-001")
	require.NoError(t, err)
	assert.Nil(t, device.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_FindBySerial_StoreUnavailable(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "iot_devices"`).WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.FindBySerial(context.Background(), "SENSOR-001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
}

func TestDeviceRepository_ListByOwner(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	rows := sqlmock.NewRows(deviceColumns)
	deviceRow(rows, 1, "A", "alice")
	deviceRow(rows, 2, "B", "alice")

	mock.ExpectQuery(`SELECT \* FROM "iot_devices" WHERE owner_id = \$1 ORDER BY id ASC`).
		WithArgs("alice").
		WillReturnRows(rows)

	devices, err := repo.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "A", devices[0].SerialNumber)
	assert.Equal(t, "B", devices[1].SerialNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Upsert_InsertsNewDevice(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	device := entity.NewFreeDevice("SENSOR-009", "PS-100", entity.DeviceTypeCamera, entity.DeviceStatusOnline, 90, fixtureTime, fixtureTime)

	mock.ExpectQuery(`INSERT INTO "iot_devices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	saved, err := repo.Upsert(context.Background(), &device)
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.ID)
	assert.Equal(t, int64(42), device.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Upsert_DuplicateSerial(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	device := entity.NewFreeDevice("SENSOR-001", "PS-100", entity.DeviceTypeSensor, entity.DeviceStatusOnline, 90, fixtureTime, fixtureTime)

	mock.ExpectQuery(`INSERT INTO "iot_devices"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint"})

	_, err := repo.Upsert(context.Background(), &device)
	assert.ErrorIs(t, err, repository.ErrDuplicateDevice)
}

func TestDeviceRepository_Upsert_ValueTooLong(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	device := entity.NewFreeDevice("SENSOR-001", "PS-100", entity.DeviceTypeSensor, entity.DeviceStatusOnline, 90, fixtureTime, fixtureTime)

	mock.ExpectQuery(`INSERT INTO "iot_devices"`).
		WillReturnError(&pgconn.PgError{Code: pgStringTooLong, Message: "value too long for type character varying(64)"})

	_, err := repo.Upsert(context.Background(), &device)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestDeviceRepository_Upsert_UpdatesExistingDevice(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	device := entity.NewFreeDevice("SENSOR-001", "PS-100", entity.DeviceTypeSensor, entity.DeviceStatusOffline, 12, fixtureTime, fixtureTime)
	device.ID = 3

	mock.ExpectExec(`UPDATE "iot_devices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Upsert(context.Background(), &device)
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Upsert_UpdateOfVanishedDevice(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	device := entity.NewFreeDevice("SENSOR-001", "PS-100", entity.DeviceTypeSensor, entity.DeviceStatusOnline, 12, fixtureTime, fixtureTime)
	device.ID = 3

	mock.ExpectExec(`UPDATE "iot_devices"`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Upsert(context.Background(), &device)
	assert.ErrorIs(t, err, repository.ErrDeviceNotFound)
}

func TestDeviceRepository_DeleteBySerial(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectExec(`DELETE FROM "iot_devices" WHERE serial_number = \$1`).
		WithArgs("SENSOR-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteBySerial(context.Background(), "SENSOR-001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_ExistsBySerial(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "iot_devices" WHERE serial_number = \$1`).
		WithArgs("SENSOR-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "iot_devices" WHERE serial_number = \$1`).
		WithArgs("SENSOR-404").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsBySerial(context.Background(), "SENSOR-001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySerial(context.Background(), "SENSOR-404")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	txManager := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "iot_devices"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := txManager.Execute(context.Background(), func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.DeviceRepo().DeleteBySerial(context.Background(), "SENSOR-001")
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	txManager := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txManager.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return domainerrors.ErrDeviceAlreadyBound
	})
	assert.ErrorIs(t, err, domainerrors.ErrDeviceAlreadyBound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	txManager := NewTransactionManager(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := txManager.Execute(context.Background(), func(repository.RepositoryFactory) error {
		t.Fatal("callback must not run")

		return nil
	})
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
}

func TestClassifyError(t *testing.T) {
	assert.NoError(t, classifyError(nil, "noop"))
	assert.ErrorIs(t, classifyError(gorm.ErrRecordNotFound, "find"), repository.ErrDeviceNotFound)
	assert.ErrorIs(t, classifyError(gorm.ErrDuplicatedKey, "create"), repository.ErrDuplicateDevice)
	assert.ErrorIs(t, classifyError(&pgconn.PgError{Code: pgCheckViolation}, "create"), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, classifyError(&pgconn.PgError{Code: pgNotNullViolation}, "create"), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, classifyError(&pgconn.PgError{Code: pgStringTooLong}, "create"), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, classifyError(errors.New("i/o timeout"), "find"), domainerrors.ErrStoreUnavailable)
}
