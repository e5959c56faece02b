package repository

import (
	"context"

	"movie-app/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) List(ctx context.Context, search string) ([]catalog.Genre, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if search != "" {
		p := likePattern(search)
		q = q.Where("name ILIKE ? OR description ILIKE ?", p, p)
	}

	out := []catalog.Genre{}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err, "list genres")
	}
	return out, nil
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Genre, error) {
	var g catalog.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translate(err, "genre")
	}
	return &g, nil
}

func (r *GenreRepository) GetByID(ctx context.Context, id uint) (*catalog.Genre, error) {
	var g catalog.Genre
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err, "genre")
	}
	return &g, nil
}

func (r *GenreRepository) Create(ctx context.Context) (uint, error) {
	g := catalog.Genre{Slug: "draft-" + uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&g).Error; err != nil {
		return 0, translate(err, "create genre")
	}
	return g.ID, nil
}

type GenreUpdate struct {
	Name        string
	Slug        string
	Description string
	Icon        string
}

func (r *GenreRepository) Update(ctx context.Context, id uint, in GenreUpdate) (*catalog.Genre, error) {
	db := r.db.WithContext(ctx)
	slug, err := uniqueSlug(db, &catalog.Genre{}, in.Slug, id)
	if err != nil {
		return nil, translate(err, "genre slug")
	}
	res := db.Model(&catalog.Genre{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        in.Name,
		"slug":        slug,
		"description": in.Description,
		"icon":        in.Icon,
	})
	if err := affected(res, "genre"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GenreRepository) Delete(ctx context.Context, id uint) (*catalog.Genre, error) {
	var g catalog.Genre
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&g, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM movie_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
	if err != nil {
		return nil, translate(err, "genre")
	}
	return &g, nil
}
