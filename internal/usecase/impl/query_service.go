package impl

import (
	"context"
	"log/slog"
	"math"

	"edgeserver/internal/domain/entity"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type queryService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// QueryServiceParams holds dependencies for QueryService, injected by Fx.
type QueryServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewQueryService creates a new query service instance.
func NewQueryService(params QueryServiceParams) usecase.QueryUsecase {
	return &queryService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

// FindAllByUser lists the devices owned by userID.
func (srv *queryService) FindAllByUser(ctx context.Context, userID string) ([]*entity.Device, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	devices, err := srv.deviceRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices by owner")
	}

	return devices, nil
}

// GetKpis aggregates the devices owned by userID.
func (srv *queryService) GetKpis(ctx context.Context, userID string) (*entity.DeviceKPI, error) {
	devices, err := srv.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return computeKPIs(devices), nil
}

// computeKPIs counts statuses other than ONLINE and OFFLINE only in the total and the average.
func computeKPIs(devices []*entity.Device) *entity.DeviceKPI {
	kpi := &entity.DeviceKPI{}
	if len(devices) == 0 {
		return kpi
	}

	var batterySum int64
	for _, device := range devices {
		kpi.TotalDevices++
		batterySum += int64(device.Battery)

		switch device.Status {
		case entity.DeviceStatusOnline:
			kpi.OnlineDevices++
		case entity.DeviceStatusOffline:
			kpi.OfflineDevices++
		}

		if device.Battery < entity.LowBatteryThreshold {
			kpi.LowBatteryDevices++
		}
	}

	average := float64(batterySum) / float64(kpi.TotalDevices)
	kpi.AverageBattery = math.Round(average*100) / 100

	return kpi
}
