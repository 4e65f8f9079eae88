package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/brokerage/pkg/domain"
	"gorm.io/gorm"
)

var gormToDomain = []struct {
	gormErr   error
	domainErr error
}{
	{gorm.ErrRecordNotFound, domain.ErrNotFound},
	{gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
	{gorm.ErrForeignKeyViolated, domain.ErrNotFound},
	// the schema carries CHECK (balance >= 0) as the last line of defence
	{gorm.ErrCheckConstraintViolated, domain.ErrInsufficientFunds},
}

// MapGormErrorToDomain converts GORM errors to domain errors, keeping the
// original message. Requires gorm.Config.TranslateError for driver errors.
// Unmapped errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range gormToDomain {
		if errors.Is(err, m.gormErr) {
			return fmt.Errorf("%w: %v", m.domainErr, err)
		}
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&row).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
