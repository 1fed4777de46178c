// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"strings"
	"time"

	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"

	"github.com/pkg/errors"
)

// clock is overridden in tests.
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// findDevice loads a device and converts a missing row into ErrDeviceNotFound.
func findDevice(ctx context.Context, repo repository.DeviceRepository, serial string, forUpdate bool) (*entity.Device, error) {
	var (
		device *entity.Device
		err    error
	)
	if forUpdate {
		device, err = repo.FindBySerialForUpdate(ctx, serial)
	} else {
		device, err = repo.FindBySerial(ctx, serial)
	}

	if errors.Is(err, repository.ErrDeviceNotFound) {
		return nil, domainerrors.ErrDeviceNotFound.WrapMessage("device " + serial + " not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find device")
	}

	return device, nil
}

func requireSerial(serial string) error {
	if strings.TrimSpace(serial) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("serial number is required")
	}
	if !entity.ValidIdentifier(serial) {
		return domainerrors.ErrValidationFailed.WrapMessage("serial number exceeds 64 characters")
	}

	return nil
}

// normalizeUserID trims userID so that stored owners match the identities resolved from
// headers and query parameters.
func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domainerrors.ErrMissingUserID.WrapMessage("user id must not be blank")
	}
	if !entity.ValidIdentifier(userID) {
		return "", domainerrors.ErrValidationFailed.WrapMessage("user id exceeds 64 characters")
	}

	return userID, nil
}
