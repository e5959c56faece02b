package repository

import (
	"context"

	"movie-app/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func withMovieIDs(db *gorm.DB) *gorm.DB {
	return db.Preload("Movies", func(db *gorm.DB) *gorm.DB {
		return db.Select("movies.id")
	})
}

func (r *ActorRepository) List(ctx context.Context, search string) ([]catalog.Actor, error) {
	q := withMovieIDs(r.db.WithContext(ctx)).Order("created_at DESC")
	if search != "" {
		q = q.Where("name ILIKE ?", likePattern(search))
	}

	out := []catalog.Actor{}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err, "list actors")
	}
	return out, nil
}

func (r *ActorRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Actor, error) {
	var a catalog.Actor
	if err := withMovieIDs(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&a).Error; err != nil {
		return nil, translate(err, "actor")
	}
	return &a, nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id uint) (*catalog.Actor, error) {
	var a catalog.Actor
	if err := withMovieIDs(r.db.WithContext(ctx)).First(&a, id).Error; err != nil {
		return nil, translate(err, "actor")
	}
	return &a, nil
}

func (r *ActorRepository) Create(ctx context.Context) (uint, error) {
	a := catalog.Actor{Slug: "draft-" + uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return 0, translate(err, "create actor")
	}
	return a.ID, nil
}

type ActorUpdate struct {
	Name     string
	Slug     string
	PhotoURL string
}

func (r *ActorRepository) Update(ctx context.Context, id uint, in ActorUpdate) (*catalog.Actor, error) {
	db := r.db.WithContext(ctx)
	slug, err := uniqueSlug(db, &catalog.Actor{}, in.Slug, id)
	if err != nil {
		return nil, translate(err, "actor slug")
	}
	res := db.Model(&catalog.Actor{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      in.Name,
		"slug":      slug,
		"photo_url": in.PhotoURL,
	})
	if err := affected(res, "actor"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ActorRepository) Delete(ctx context.Context, id uint) (*catalog.Actor, error) {
	var a catalog.Actor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		return tx.Select("Movies").Delete(&a).Error
	})
	if err != nil {
		return nil, translate(err, "actor")
	}
	return &a, nil
}
