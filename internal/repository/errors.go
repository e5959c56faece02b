package repository

import (
	"errors"
	"fmt"

	"movie-app/internal/apperr"

	"gorm.io/gorm"
)

// translate maps gorm errors onto apperr kinds. Only a missing row becomes
// ErrNotFound; any other failure is returned as is.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// affected turns a zero-row write into ErrNotFound.
func affected(res *gorm.DB, what string) error {
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return nil
}

func likePattern(term string) string {
	return "%" + term + "%"
}
