package impl

import (
	"context"
	"log/slog"
	"time"

	"edgeserver/config"
	deliverycontext "edgeserver/internal/delivery/context"
	"edgeserver/internal/domain/entity"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/domain/service"
	"edgeserver/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultSyncTimeout = 2 * time.Second

// syncService implements the SyncUsecase interface.
type syncService struct {
	publisher service.OccupancyPublisher
	txManager repository.TransactionManager
	timeout   time.Duration
	logger    *slog.Logger
	now       clock
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	Publisher service.OccupancyPublisher
	TxManager repository.TransactionManager
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSyncService creates a new sync service instance.
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	timeout := defaultSyncTimeout
	if params.Config != nil && params.Config.Backend.Sync.Timeout > 0 {
		timeout = params.Config.Backend.Sync.Timeout
	}

	return &syncService{
		publisher: params.Publisher,
		txManager: params.TxManager,
		timeout:   timeout,
		logger:    params.Logger,
		now:       systemClock,
	}
}

func (srv *syncService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, srv.logger)
}

// PushOccupancy publishes the update and records the derived sync status whatever happened.
func (srv *syncService) PushOccupancy(ctx context.Context, serial string, occupied bool) (status entity.SyncStatus) {
	status = entity.SyncStatusDisconnected

	defer func() {
		if r := recover(); r != nil {
			srv.log(ctx).Error("Occupancy push panicked", slog.String("serial", serial), slog.Any("panic", r))
			status = entity.SyncStatusDisconnected
		}
		srv.recordSyncStatus(context.WithoutCancel(ctx), serial, status)
	}()

	pushCtx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	err := srv.publisher.PublishOccupancy(pushCtx, &service.OccupancyUpdate{
		SerialNumber: serial,
		Occupied:     occupied,
		RequestID:    deliverycontext.RequestIDFromContext(ctx),
	})

	var upstreamErr *service.UpstreamError
	switch {
	case err == nil:
		status = entity.SyncStatusConnected
		srv.log(ctx).Info("Occupancy synced", slog.String("serial", serial), slog.Bool("occupied", occupied))
	case errors.As(err, &upstreamErr):
		srv.log(ctx).Warn("Backend rejected occupancy update",
			slog.String("serial", serial),
			slog.Int("statusCode", upstreamErr.StatusCode),
		)
	default:
		srv.log(ctx).Error("Failed to reach backend", slog.String("serial", serial), slog.Any("error", err))
	}

	return status
}

// recordSyncStatus writes status onto the device only when it changed.
func (srv *syncService) recordSyncStatus(ctx context.Context, serial string, status entity.SyncStatus) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		device, err := deviceRepo.FindBySerialForUpdate(ctx, serial)
		if errors.Is(err, repository.ErrDeviceNotFound) {
			srv.log(ctx).Warn("Device vanished before sync status update", slog.String("serial", serial))

			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find device")
		}

		if device.SyncStatus == status {
			return nil
		}

		next := device.WithSyncStatus(status, srv.now())
		if _, err := deviceRepo.Upsert(ctx, &next); err != nil {
			return errors.Wrap(err, "failed to save sync status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update sync status",
			slog.String("serial", serial),
			slog.String("syncStatus", status.String()),
			slog.Any("error", err),
		)
	}
}
