// Package memory is an in-process device store for local development and tests.
// Transactions are serialised behind a store-wide lock; writes are staged and only
// applied when the callback succeeds.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"

	"github.com/pkg/errors"
)

var (
	_ repository.TransactionManager = (*Store)(nil)
	_ repository.DeviceRepository   = (*autoCommitRepository)(nil)
	_ repository.DeviceRepository   = (*txRepository)(nil)
)

// Store keeps devices in a map keyed by serial number.
type Store struct {
	mu      sync.RWMutex
	devices map[string]*entity.Device
	nextID  int64
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		devices: make(map[string]*entity.Device),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// DeviceRepo returns a repository whose every write commits on its own.
func (s *Store) DeviceRepo() repository.DeviceRepository {
	return &autoCommitRepository{store: s}
}

// Execute runs fn with exclusive access to the store. Staged writes are discarded when
// fn returns an error or panics.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to begin transaction")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTxRepository(s)
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()

	return nil
}

// txRepository is a view over the store plus the writes staged by one transaction.
// The caller holds the store lock for its whole life.
type txRepository struct {
	store   *Store
	staged  map[string]*entity.Device
	deleted map[string]struct{}
}

func newTxRepository(s *Store) *txRepository {
	return &txRepository{
		store:   s,
		staged:  make(map[string]*entity.Device),
		deleted: make(map[string]struct{}),
	}
}

// DeviceRepo lets a transaction act as its own repository factory.
func (tx *txRepository) DeviceRepo() repository.DeviceRepository {
	return tx
}

func (tx *txRepository) lookup(serial string) (*entity.Device, bool) {
	if _, gone := tx.deleted[serial]; gone {
		return nil, false
	}
	if device, ok := tx.staged[serial]; ok {
		return device, true
	}
	device, ok := tx.store.devices[serial]

	return device, ok
}

func (tx *txRepository) FindBySerial(_ context.Context, serial string) (*entity.Device, error) {
	device, ok := tx.lookup(serial)
	if !ok {
		return nil, repository.ErrDeviceNotFound
	}

	return cloneDevice(device), nil
}

// FindBySerialForUpdate needs no extra locking: the transaction already owns the store.
func (tx *txRepository) FindBySerialForUpdate(ctx context.Context, serial string) (*entity.Device, error) {
	return tx.FindBySerial(ctx, serial)
}

func (tx *txRepository) ListByOwner(_ context.Context, ownerID string) ([]*entity.Device, error) {
	devices := make([]*entity.Device, 0)
	seen := make(map[string]struct{}, len(tx.staged))

	collect := func(serial string) {
		if _, dup := seen[serial]; dup {
			return
		}
		seen[serial] = struct{}{}

		if device, ok := tx.lookup(serial); ok && device.IsBoundToUser(ownerID) {
			devices = append(devices, cloneDevice(device))
		}
	}
	for serial := range tx.staged {
		collect(serial)
	}
	for serial := range tx.store.devices {
		collect(serial)
	}

	slices.SortFunc(devices, func(a, b *entity.Device) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return devices, nil
}

func (tx *txRepository) Upsert(_ context.Context, device *entity.Device) (*entity.Device, error) {
	if device == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("device is required")
	}
	if !entity.ValidBattery(device.Battery) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("battery must be between 0 and 100")
	}
	if err := fitsColumns(device); err != nil {
		return nil, err
	}

	existing, exists := tx.lookup(device.SerialNumber)

	if device.ID == 0 {
		if exists {
			return nil, errors.WithStack(repository.ErrDuplicateDevice)
		}
		tx.store.nextID++
		device.ID = tx.store.nextID
		if device.CreatedAt.IsZero() {
			device.CreatedAt = tx.store.now()
		}
	} else {
		if !exists || existing.ID != device.ID {
			return nil, repository.ErrDeviceNotFound
		}
		device.CreatedAt = existing.CreatedAt
	}
	if device.UpdatedAt.Before(device.CreatedAt) {
		device.UpdatedAt = device.CreatedAt
	}

	delete(tx.deleted, device.SerialNumber)
	tx.staged[device.SerialNumber] = cloneDevice(device)

	return device, nil
}

func (tx *txRepository) UpsertAll(ctx context.Context, devices []*entity.Device) ([]*entity.Device, error) {
	saved := make([]*entity.Device, 0, len(devices))
	for _, device := range devices {
		d, err := tx.Upsert(ctx, device)
		if err != nil {
			return nil, err
		}
		saved = append(saved, d)
	}

	return saved, nil
}

func (tx *txRepository) DeleteBySerial(_ context.Context, serial string) error {
	delete(tx.staged, serial)
	tx.deleted[serial] = struct{}{}

	return nil
}

func (tx *txRepository) ExistsBySerial(_ context.Context, serial string) (bool, error) {
	_, ok := tx.lookup(serial)

	return ok, nil
}

func (tx *txRepository) commit() {
	for serial := range tx.deleted {
		delete(tx.store.devices, serial)
	}
	for serial, device := range tx.staged {
		tx.store.devices[serial] = device
	}
}

// autoCommitRepository runs reads under the shared lock and wraps each write in its own transaction.
type autoCommitRepository struct {
	store *Store
}

func (r *autoCommitRepository) read(fn func(tx *txRepository)) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fn(newTxRepository(r.store))
}

func (r *autoCommitRepository) write(ctx context.Context, fn func(tx repository.DeviceRepository) error) error {
	return r.store.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return fn(repoFactory.DeviceRepo())
	})
}

func (r *autoCommitRepository) FindBySerial(ctx context.Context, serial string) (device *entity.Device, err error) {
	r.read(func(tx *txRepository) { device, err = tx.FindBySerial(ctx, serial) })

	return device, err
}

func (r *autoCommitRepository) FindBySerialForUpdate(ctx context.Context, serial string) (*entity.Device, error) {
	return r.FindBySerial(ctx, serial)
}

func (r *autoCommitRepository) ListByOwner(ctx context.Context, ownerID string) (devices []*entity.Device, err error) {
	r.read(func(tx *txRepository) { devices, err = tx.ListByOwner(ctx, ownerID) })

	return devices, err
}

func (r *autoCommitRepository) ExistsBySerial(ctx context.Context, serial string) (exists bool, err error) {
	r.read(func(tx *txRepository) { exists, err = tx.ExistsBySerial(ctx, serial) })

	return exists, err
}

func (r *autoCommitRepository) Upsert(ctx context.Context, device *entity.Device) (saved *entity.Device, err error) {
	err = r.write(ctx, func(tx repository.DeviceRepository) error {
		saved, err = tx.Upsert(ctx, device)

		return err
	})

	return saved, err
}

func (r *autoCommitRepository) UpsertAll(ctx context.Context, devices []*entity.Device) (saved []*entity.Device, err error) {
	err = r.write(ctx, func(tx repository.DeviceRepository) error {
		saved, err = tx.UpsertAll(ctx, devices)

		return err
	})

	return saved, err
}

func (r *autoCommitRepository) DeleteBySerial(ctx context.Context, serial string) error {
	return r.write(ctx, func(tx repository.DeviceRepository) error {
		return tx.DeleteBySerial(ctx, serial)
	})
}

func cloneDevice(d *entity.Device) *entity.Device {
	c := *d
	c.OwnerID = cloneString(d.OwnerID)
	c.ParkingID = cloneString(d.ParkingID)
	c.ParkingSpotID = cloneString(d.ParkingSpotID)

	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s

	return &v
}

// fitsColumns applies the column widths of the iot_devices table.
func fitsColumns(device *entity.Device) error {
	ids := []*string{&device.SerialNumber, device.OwnerID, device.ParkingID, device.ParkingSpotID}
	for _, id := range ids {
		if id != nil && !entity.ValidIdentifier(*id) {
			return domainerrors.ErrValidationFailed.WrapMessage("identifier exceeds 64 characters")
		}
	}
	if len(device.Model) > entity.MaxModelLength {
		return domainerrors.ErrValidationFailed.WrapMessage("model exceeds 100 characters")
	}

	return nil
}
