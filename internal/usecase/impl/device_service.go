package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "edgeserver/internal/delivery/context"
	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceManagementUsecase interface.
type deviceService struct {
	txManager  repository.TransactionManager
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
	now        clock
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService creates a new device management service instance.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceManagementUsecase {
	return &deviceService{
		txManager:  params.TxManager,
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
		now:        systemClock,
	}
}

func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, srv.logger)
}

// RegisterDevice returns the stored device for the serial, or creates a free one.
func (srv *deviceService) RegisterDevice(ctx context.Context, input *usecase.RegisterDeviceInput) (*entity.Device, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("registration is required")
	}
	if err := requireSerial(input.SerialNumber); err != nil {
		return nil, err
	}

	existing, err := srv.deviceRepo.FindBySerial(ctx, input.SerialNumber)
	if err == nil {
		srv.log(ctx).Info("Device already registered", slog.String("serial", input.SerialNumber), slog.Int64("id", existing.ID))

		return existing, nil
	}
	if !errors.Is(err, repository.ErrDeviceNotFound) {
		return nil, errors.Wrap(err, "failed to find device")
	}

	if input.ParkingID != nil || input.ParkingSpotID != nil {
		srv.log(ctx).Debug("Ignoring parking association on registration of a free device", slog.String("serial", input.SerialNumber))
	}

	now := srv.now()
	device := entity.NewFreeDevice(
		input.SerialNumber,
		modelOrUnknown(input.Model),
		entity.ParseDeviceType(deref(input.Type)),
		entity.ParseDeviceStatus(deref(input.Status)),
		entity.DefaultBattery,
		now,
		now,
	)

	created, err := srv.deviceRepo.Upsert(ctx, &device)
	if errors.Is(err, repository.ErrDuplicateDevice) {
		return srv.deviceRepo.FindBySerial(ctx, input.SerialNumber)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	srv.log(ctx).Info("Device registered", slog.String("serial", created.SerialNumber), slog.Int64("id", created.ID))

	return created, nil
}

// BulkCreate inserts a batch of free devices atomically.
func (srv *deviceService) BulkCreate(ctx context.Context, inputs []*usecase.BulkDeviceInput) ([]*entity.Device, error) {
	now := srv.now()

	devices := make([]*entity.Device, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for i, input := range inputs {
		if input == nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("bulk item is empty")
		}
		if _, dup := seen[input.SerialNumber]; dup {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("duplicate serial number in batch: " + input.SerialNumber)
		}
		seen[input.SerialNumber] = struct{}{}

		lastCheckIn := now
		if input.LastCheckIn != nil {
			lastCheckIn = *input.LastCheckIn
		}

		device := entity.NewFreeDevice(input.SerialNumber, input.Model, input.Type, input.Status, input.Battery, lastCheckIn, now)
		if err := device.Validate(); err != nil {
			return nil, errors.Wrapf(err, "bulk item %d", i)
		}
		devices = append(devices, &device)
	}

	if len(devices) == 0 {
		return devices, nil
	}

	var created []*entity.Device
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		for _, device := range devices {
			exists, err := deviceRepo.ExistsBySerial(ctx, device.SerialNumber)
			if err != nil {
				return errors.Wrap(err, "failed to check device existence")
			}
			if exists {
				return domainerrors.ErrDeviceAlreadyExists.WrapMessage("device " + device.SerialNumber + " already exists")
			}
		}

		saved, err := deviceRepo.UpsertAll(ctx, devices)
		if errors.Is(err, repository.ErrDuplicateDevice) {
			return domainerrors.ErrDeviceAlreadyExists.WrapMessage("a device in the batch already exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to save devices")
		}
		created = saved

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Bulk create failed", slog.Int("count", len(devices)), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Bulk created devices", slog.Int("count", len(created)))

	return created, nil
}

// DeleteDevice removes a device after checking it exists.
func (srv *deviceService) DeleteDevice(ctx context.Context, serial string) error {
	if err := requireSerial(serial); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deviceRepo := repoFactory.DeviceRepo()

		device, err := findDevice(ctx, deviceRepo, serial, true)
		if err != nil {
			return err
		}

		srv.log(ctx).Info("Deleting device", slog.String("serial", serial), slog.Int64("id", device.ID))

		if err := deviceRepo.DeleteBySerial(ctx, serial); err != nil {
			return errors.Wrap(err, "failed to delete device")
		}

		return nil
	})
}

func modelOrUnknown(model *string) string {
	if model == nil || strings.TrimSpace(*model) == "" {
		return entity.UnknownModel
	}

	return *model
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
