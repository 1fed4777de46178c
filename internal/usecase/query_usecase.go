package usecase

import (
	"context"

	"edgeserver/internal/domain/entity"
)

// QueryUsecase serves owner-scoped reads. It never returns devices owned by another user.
type QueryUsecase interface {
	// FindAllByUser lists the devices owned by userID.
	FindAllByUser(ctx context.Context, userID string) ([]*entity.Device, error)

	// GetKpis aggregates the devices owned by userID.
	GetKpis(ctx context.Context, userID string) (*entity.DeviceKPI, error)
}
