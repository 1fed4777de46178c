// Package persistence selects the device store implementation from configuration.
package persistence

import (
	"log/slog"

	"edgeserver/config"
	"edgeserver/internal/domain/repository"
	"edgeserver/internal/errors"
	"edgeserver/internal/infra/persistence/memory"
	"edgeserver/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// StoreParams holds dependencies for the device store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// StoreResult exposes the store through its two ports.
type StoreResult struct {
	fx.Out

	TxManager  repository.TransactionManager
	DeviceRepo repository.DeviceRepository
}

// NewStore creates the device store named by persistence.driver.
func NewStore(params StoreParams) (StoreResult, error) {
	driver := params.Config.Persistence.Driver

	switch driver {
	case config.PersistenceDriverMemory:
		params.Logger.Warn("Using in-memory device store; devices are lost on restart")
		store := memory.NewStore()

		return StoreResult{TxManager: store, DeviceRepo: store.DeviceRepo()}, nil

	case config.PersistenceDriverPostgres, "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return StoreResult{}, err
		}
		params.Logger.Info("Using PostgreSQL device store")

		return StoreResult{
			TxManager:  postgres.NewTransactionManager(db),
			DeviceRepo: postgres.NewDeviceRepository(db),
		}, nil

	default:
		return StoreResult{}, errors.Errorf("unknown persistence driver: %s", driver)
	}
}

// Module provides the device store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStore),
)
