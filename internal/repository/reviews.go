package repository

import (
	"context"

	"movie-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&catalog.Movie{}, review.MovieID).Error; err != nil {
			return err
		}
		return tx.Create(review).Error
	})
	return translate(err, "review")
}

func (r *ReviewRepository) List(ctx context.Context) ([]catalog.Review, error) {
	out := []catalog.Review{}
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list reviews")
	}
	return out, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) (*catalog.Review, error) {
	var review catalog.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			return err
		}
		return tx.Delete(&review).Error
	})
	if err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}
