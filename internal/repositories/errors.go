package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"

	"gorm.io/gorm"
)

// translate classifies a gorm error for the given resource.
func translate(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(apperrors.Conflict, fmt.Sprintf("%s already exists", resource), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Wrap(apperrors.Conflict, fmt.Sprintf("%s is referenced by other records", resource), err)
	default:
		return fmt.Errorf("%s %v: %w", resource, id, err)
	}
}
