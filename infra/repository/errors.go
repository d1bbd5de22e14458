package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
)

// MapGormErrorToDomain converts gorm errors to domain errors, keeping
// database concerns inside the infrastructure layer. The error chain is
// traversed because gorm wraps driver errors. Anything unrecognized is
// wrapped as a storage failure: by then the transaction has rolled back, so
// no partial write survives.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	for current := err; current != nil; current = errors.Unwrap(current) {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(current, gorm.ErrForeignKeyViolated):
			return domain.ErrNotFound
		}
	}

	// Domain errors returned from inside a unit of work pass through.
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
