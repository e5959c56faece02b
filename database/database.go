package database

import (
	"fmt"

	"movie-app/internal/domain/billing"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres. Driver errors are translated into gorm's
// portable errors so repositories can tell duplicates from other failures.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// core
		&users.User{},
		&billing.Order{},
		&billing.WebhookEvent{},

		// catalog
		&catalog.Genre{},
		&catalog.Actor{},
		&catalog.Movie{},
		&catalog.Review{},
		&catalog.Favorite{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
