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

// ownershipService implements the OwnershipUsecase interface.
// Each transition reads and writes the device under a row lock in one transaction,
// so two concurrent binds on a serial cannot both win.
type ownershipService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       clock
}

// OwnershipServiceParams holds dependencies for OwnershipService, injected by Fx.
type OwnershipServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewOwnershipService creates a new ownership service instance.
func NewOwnershipService(params OwnershipServiceParams) usecase.OwnershipUsecase {
	return &ownershipService{
		txManager: params.TxManager,
		logger:    params.Logger,
		now:       systemClock,
	}
}

func (srv *ownershipService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, srv.logger)
}

// BindDevice claims a free device for userID.
func (srv *ownershipService) BindDevice(ctx context.Context, serial, userID string) (*entity.Device, error) {
	if err := requireSerial(serial); err != nil {
		return nil, err
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	var bound *entity.Device
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		device, err := findDevice(ctx, deviceRepo, serial, true)
		if err != nil {
			return err
		}

		if device.IsBoundToUser(userID) {
			bound = device

			return nil
		}
		if device.IsBound() {
			return domainerrors.ErrDeviceAlreadyBound.WrapMessage("device " + serial + " is owned by another user")
		}

		next, err := device.Bind(userID, srv.now())
		if err != nil {
			return err
		}

		saved, err := deviceRepo.Upsert(ctx, &next)
		if err != nil {
			return errors.Wrap(err, "failed to save bound device")
		}
		bound = saved

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Bind device failed", slog.String("serial", serial), slog.String("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Device bound", slog.String("serial", serial), slog.String("userID", userID))

	return bound, nil
}

// UnbindDevice releases a device owned by userID.
func (srv *ownershipService) UnbindDevice(ctx context.Context, serial, userID string) (*entity.Device, error) {
	if err := requireSerial(serial); err != nil {
		return nil, err
	}
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	var released *entity.Device
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		device, err := findDevice(ctx, deviceRepo, serial, true)
		if err != nil {
			return err
		}

		if !device.IsBoundToUser(userID) {
			return domainerrors.ErrDeviceOwnershipViolation.WrapMessage("device " + serial + " is not owned by the caller")
		}

		next := device.Unbind(srv.now())
		saved, err := deviceRepo.Upsert(ctx, &next)
		if err != nil {
			return errors.Wrap(err, "failed to save unbound device")
		}
		released = saved

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Unbind device failed", slog.String("serial", serial), slog.String("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Device unbound", slog.String("serial", serial), slog.String("userID", userID))

	return released, nil
}
