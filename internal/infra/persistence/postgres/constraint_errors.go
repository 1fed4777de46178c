package postgres

import (
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
	pgStringTooLong    = "22001"
)

// classifyError converts a GORM or driver error into the error the repository contract promises.
func classifyError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrDeviceNotFound
	case isUniqueConstraintViolation(err):
		return errors.WithStack(repository.ErrDuplicateDevice)
	case isCheckConstraintViolation(err), isNotNullConstraintViolation(err), hasSQLState(err, pgStringTooLong):
		return domainerrors.ErrValidationFailed.WrapMessage(action + ": " + err.Error())
	default:
		return domainerrors.NewDatabaseExecuteError(err, action)
	}
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, pgUniqueViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, pgNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return hasSQLState(err, pgCheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == code
}
