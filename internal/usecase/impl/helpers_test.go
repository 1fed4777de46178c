package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"edgeserver/internal/domain/entity"
	"edgeserver/internal/domain/repository"
	mockRepo "edgeserver/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return testNow
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

// txFixtures wires a transaction manager mock that runs callbacks against deviceRepo.
type txFixtures struct {
	txManager  *mockRepo.MockTransactionManager
	factory    *mockRepo.MockRepositoryFactory
	deviceRepo *mockRepo.MockDeviceRepository
}

func newTxFixtures(t *testing.T) txFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)

	factory.EXPECT().DeviceRepo().Return(deviceRepo).Maybe()

	return txFixtures{
		txManager:  txManager,
		factory:    factory,
		deviceRepo: deviceRepo,
	}
}

// expectTransaction lets Execute run its callback with the fixture factory.
func (f txFixtures) expectTransaction() *mockRepo.MockTransactionManager_Execute_Call {
	return f.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
}

// expectUpsertEcho makes Upsert return the device it was given.
func (f txFixtures) expectUpsertEcho() *mockRepo.MockDeviceRepository_Upsert_Call {
	return f.deviceRepo.EXPECT().
		Upsert(mock.Anything, mock.AnythingOfType("*entity.Device")).
		RunAndReturn(func(_ context.Context, device *entity.Device) (*entity.Device, error) {
			return device, nil
		})
}

func newStoredDevice(serial string, owner *string) *entity.Device {
	created := testNow.Add(-24 * time.Hour)
	device := entity.NewFreeDevice(serial, "PS-100", entity.DeviceTypeSensor, entity.DeviceStatusOnline, 80, created, created)
	device.ID = 7
	device.OwnerID = owner

	return &device
}
