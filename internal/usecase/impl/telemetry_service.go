package impl

import (
	"context"
	"log/slog"

	deliverycontext "edgeserver/internal/delivery/context"
	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// telemetryService implements the TelemetryUsecase interface.
type telemetryService struct {
	txManager repository.TransactionManager
	sync      usecase.SyncUsecase
	logger    *slog.Logger
	now       clock
}

// TelemetryServiceParams holds dependencies for TelemetryService, injected by Fx.
type TelemetryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Sync      usecase.SyncUsecase
	Logger    *slog.Logger
}

// NewTelemetryService creates a new telemetry service instance.
func NewTelemetryService(params TelemetryServiceParams) usecase.TelemetryUsecase {
	return &telemetryService{
		txManager: params.TxManager,
		sync:      params.Sync,
		logger:    params.Logger,
		now:       systemClock,
	}
}

func (srv *telemetryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, srv.logger)
}

// Ingest stores the report and then forwards occupancy when present. The device is always
// written, even when only lastCheckIn changes.
func (srv *telemetryService) Ingest(ctx context.Context, report *usecase.TelemetryReport) error {
	if report == nil {
		return domainerrors.ErrValidationFailed.WrapMessage("telemetry report is required")
	}
	if err := requireSerial(report.SerialNumber); err != nil {
		return err
	}
	if report.Battery != nil && !entity.ValidBattery(*report.Battery) {
		return domainerrors.ErrValidationFailed.WrapMessage("battery must be between 0 and 100")
	}

	reading := toReading(report)

	err := srv.recordCheckIn(ctx, report.SerialNumber, reading)
	if errors.Is(err, repository.ErrDuplicateDevice) {
		// A concurrent first report created the device; merge into its row.
		srv.log(ctx).Debug("Discovered device created concurrently, retrying", slog.String("serial", report.SerialNumber))
		err = srv.recordCheckIn(ctx, report.SerialNumber, reading)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to ingest telemetry", slog.String("serial", report.SerialNumber), slog.Any("error", err))

		return err
	}

	if report.Occupied != nil {
		srv.sync.PushOccupancy(ctx, report.SerialNumber, *report.Occupied)
	}

	return nil
}

func (srv *telemetryService) recordCheckIn(ctx context.Context, serial string, reading entity.Reading) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		device, err := deviceRepo.FindBySerialForUpdate(ctx, serial)
		if errors.Is(err, repository.ErrDeviceNotFound) {
			discovered := entity.NewDiscoveredDevice(serial, reading.Battery, srv.now())
			device, err = deviceRepo.Upsert(ctx, &discovered)
			if err != nil {
				return errors.Wrap(err, "failed to create discovered device")
			}
			srv.log(ctx).Info("Auto-discovered device", slog.String("serial", serial), slog.Int64("id", device.ID))
		} else if err != nil {
			return errors.Wrap(err, "failed to find device")
		}

		merged := device.RecordCheckIn(reading, srv.now())
		if _, err := deviceRepo.Upsert(ctx, &merged); err != nil {
			return errors.Wrap(err, "failed to save telemetry")
		}

		srv.log(ctx).Debug("Telemetry recorded",
			slog.String("serial", serial),
			slog.Int("battery", merged.Battery),
			slog.String("status", merged.Status.String()),
			slog.Time("lastCheckIn", merged.LastCheckIn),
		)

		return nil
	})
}

func toReading(report *usecase.TelemetryReport) entity.Reading {
	reading := entity.Reading{
		Battery:   report.Battery,
		CheckedAt: report.CheckedAt,
	}
	if report.Status != nil {
		status := entity.ParseDeviceStatus(*report.Status)
		reading.Status = &status
	}

	return reading
}
