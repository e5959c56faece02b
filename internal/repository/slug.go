package repository

import (
	"fmt"

	"movie-app/internal/apperr"

	"gorm.io/gorm"
)

const (
	fallbackSlug    = "untitled"
	maxSlugAttempts = 50
)

// uniqueSlug returns base if no other row of model's table uses it, then tries
// base-<id>, base-<id>-2, base-<id>-3 and so on.
func uniqueSlug(db *gorm.DB, model interface{}, base string, id uint) (string, error) {
	if base == "" {
		base = fallbackSlug
	}
	candidate := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		var taken int64
		if err := db.Model(model).Where("slug = ? AND id <> ?", candidate, id).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, id)
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d-%d", base, id, attempt)
		}
	}
	return "", fmt.Errorf("no free slug for %q: %w", base, apperr.ErrConflict)
}
