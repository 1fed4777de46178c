package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"
	mockUsecase "edgeserver/internal/mocks/usecase"
	"edgeserver/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type telemetryServiceFixtures struct {
	txFixtures
	service usecase.TelemetryUsecase
	sync    *mockUsecase.MockSyncUsecase
}

func createTestTelemetryService(t *testing.T) telemetryServiceFixtures {
	tx := newTxFixtures(t)
	sync := mockUsecase.NewMockSyncUsecase(t)
	service := NewTelemetryService(TelemetryServiceParams{
		TxManager: tx.txManager,
		Sync:      sync,
		Logger:    newDiscardLogger(),
	})
	service.(*telemetryService).now = fixedClock

	return telemetryServiceFixtures{txFixtures: tx, service: service, sync: sync}
}

func TestTelemetryService_Ingest_MergesIntoExistingDevice(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()
	checkedAt := testNow.Add(-time.Minute)
	stored := newStoredDevice("SENSOR-001", strPtr("alice"))

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "SENSOR-001").Return(stored, nil)

	var saved *entity.Device
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.AnythingOfType("*entity.Device")).
		RunAndReturn(func(_ context.Context, device *entity.Device) (*entity.Device, error) {
			saved = device

			return device, nil
		})
	fx.sync.EXPECT().PushOccupancy(ctx, "SENSOR-001", true).Return(entity.SyncStatusConnected)

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{
		SerialNumber: "SENSOR-001",
		Status:       strPtr("Maintenance"),
		Battery:      intPtr(42),
		CheckedAt:    &checkedAt,
		Occupied:     boolPtr(true),
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, 42, saved.Battery)
	assert.Equal(t, entity.DeviceStatusMaintenance, saved.Status)
	assert.Equal(t, checkedAt, saved.LastCheckIn)
	assert.Equal(t, testNow, saved.UpdatedAt)
	assert.True(t, saved.IsBoundToUser("alice"))
}

func TestTelemetryService_Ingest_AlwaysPersistsCheckIn(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()
	stored := newStoredDevice("SENSOR-001", nil)

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "SENSOR-001").Return(stored, nil)
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.MatchedBy(func(device *entity.Device) bool {
		return device.LastCheckIn.Equal(testNow) && device.Battery == stored.Battery && device.Status == stored.Status
	})).Return(stored, nil)

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{SerialNumber: "SENSOR-001"})
	require.NoError(t, err)
	fx.sync.AssertNotCalled(t, "PushOccupancy", mock.Anything, mock.Anything, mock.Anything)
}

func TestTelemetryService_Ingest_AutoDiscoversUnknownSerial(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "X-9").Return(nil, repository.ErrDeviceNotFound)

	var writes []entity.Device
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.AnythingOfType("*entity.Device")).
		RunAndReturn(func(_ context.Context, device *entity.Device) (*entity.Device, error) {
			stored := *device
			stored.ID = 11
			writes = append(writes, stored)

			return &stored, nil
		}).Times(2)
	fx.sync.EXPECT().PushOccupancy(ctx, "X-9", true).Return(entity.SyncStatusConnected)

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{
		SerialNumber: "X-9",
		Status:       strPtr("online"),
		Battery:      intPtr(77),
		Occupied:     boolPtr(true),
	})
	require.NoError(t, err)

	require.Len(t, writes, 2)
	discovered := writes[0]
	assert.Equal(t, entity.DiscoveredModel, discovered.Model)
	assert.Equal(t, entity.DeviceTypeSensor, discovered.Type)
	assert.Equal(t, 77, discovered.Battery)
	assert.Nil(t, discovered.OwnerID)
	assert.Equal(t, entity.SyncStatusDisconnected, discovered.SyncStatus)

	merged := writes[1]
	assert.Equal(t, int64(11), merged.ID)
	assert.Equal(t, 77, merged.Battery)
	assert.Equal(t, entity.DeviceStatusOnline, merged.Status)
	assert.False(t, merged.IsBound())
}

func TestTelemetryService_Ingest_DiscoveryDefaultsBatteryToFull(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "X-10").Return(nil, repository.ErrDeviceNotFound)
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.MatchedBy(func(device *entity.Device) bool {
		return device.Battery == entity.DefaultBattery
	})).RunAndReturn(func(_ context.Context, device *entity.Device) (*entity.Device, error) {
		return device, nil
	}).Times(2)

	require.NoError(t, fx.service.Ingest(ctx, &usecase.TelemetryReport{SerialNumber: "X-10"}))
}

func TestTelemetryService_Ingest_RetriesWhenDiscoveryRaces(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()
	winner := newStoredDevice("X-9", nil)

	fx.expectTransaction().Times(2)
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "X-9").Return(nil, repository.ErrDeviceNotFound).Once()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "X-9").Return(winner, nil).Once()
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.MatchedBy(func(device *entity.Device) bool { return device.ID == 0 })).
		Return(nil, repository.ErrDuplicateDevice).Once()
	fx.deviceRepo.EXPECT().Upsert(ctx, mock.MatchedBy(func(device *entity.Device) bool { return device.ID == winner.ID })).
		Return(winner, nil).Once()

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{SerialNumber: "X-9", Battery: intPtr(50)})
	require.NoError(t, err)
}

func TestTelemetryService_Ingest_InvalidReport(t *testing.T) {
	tests := []struct {
		name   string
		report *usecase.TelemetryReport
	}{
		{name: "nil report", report: nil},
		{name: "blank serial", report: &usecase.TelemetryReport{SerialNumber: " "}},
		{name: "oversized serial", report: &usecase.TelemetryReport{SerialNumber: strings.Repeat("S", entity.MaxIdentifierLength+1)}},
		{name: "battery above range", report: &usecase.TelemetryReport{SerialNumber: "S", Battery: intPtr(101)}},
		{name: "battery below range", report: &usecase.TelemetryReport{SerialNumber: "S", Battery: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestTelemetryService(t)

			err := fx.service.Ingest(context.Background(), tt.report)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestTelemetryService_Ingest_StoreFailureSkipsSync(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "SENSOR-001").
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "find device"))

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{SerialNumber: "SENSOR-001", Occupied: boolPtr(false)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
	fx.sync.AssertNotCalled(t, "PushOccupancy", mock.Anything, mock.Anything, mock.Anything)
}

func TestTelemetryService_Ingest_SucceedsWhenUpstreamIsDown(t *testing.T) {
	fx := createTestTelemetryService(t)
	ctx := context.Background()

	fx.expectTransaction()
	fx.deviceRepo.EXPECT().FindBySerialForUpdate(ctx, "SENSOR-001").Return(newStoredDevice("SENSOR-001", nil), nil)
	fx.expectUpsertEcho()
	fx.sync.EXPECT().PushOccupancy(ctx, "SENSOR-001", false).Return(entity.SyncStatusDisconnected)

	err := fx.service.Ingest(ctx, &usecase.TelemetryReport{SerialNumber: "SENSOR-001", Occupied: boolPtr(false)})
	require.NoError(t, err)
}

func TestToReading_MapsStatusLeniently(t *testing.T) {
	reading := toReading(&usecase.TelemetryReport{SerialNumber: "S", Status: strPtr("sleeping")})

	require.NotNil(t, reading.Status)
	assert.Equal(t, entity.DeviceStatusOnline, *reading.Status)
	assert.Nil(t, reading.Battery)
	assert.Nil(t, reading.CheckedAt)
}
