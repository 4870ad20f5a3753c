package repository

import (
	"errors"

	"github.com/amirasaad/atm/pkg/domain"
	"gorm.io/gorm"
)

var gormToDomain = []struct {
	gorm   error
	domain error
}{
	{gorm.ErrRecordNotFound, domain.ErrNotFound},
	{gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
	{gorm.ErrForeignKeyViolated, domain.ErrValidation},
	{gorm.ErrCheckConstraintViolated, domain.ErrValidation},
}

// MapGormErrorToDomain converts GORM errors anywhere in err's chain to domain errors,
// so callers above the infrastructure layer only match domain sentinels.
// Errors without a mapping are returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range gormToDomain {
		if errors.Is(err, m.gorm) {
			return m.domain
		}
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Exec(query, args...).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
