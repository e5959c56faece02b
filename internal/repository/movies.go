package repository

import (
	"context"

	"movie-app/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const mostPopularLimit = 8

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// detailed preloads everything a movie page shows.
func detailed(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Actors").
		Preload("Genres").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})
}

func (r *MovieRepository) List(ctx context.Context, search string) ([]catalog.Movie, error) {
	q := r.db.WithContext(ctx).Preload("Actors").Preload("Genres").Order("created_at DESC")
	if search != "" {
		q = q.Where("title ILIKE ?", likePattern(search))
	}

	out := []catalog.Movie{}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err, "list movies")
	}
	return out, nil
}

func (r *MovieRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Movie, error) {
	var m catalog.Movie
	if err := detailed(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translate(err, "movie")
	}
	return &m, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id uint) (*catalog.Movie, error) {
	var m catalog.Movie
	if err := detailed(r.db.WithContext(ctx)).First(&m, id).Error; err != nil {
		return nil, translate(err, "movie")
	}
	return &m, nil
}

func (r *MovieRepository) MostPopular(ctx context.Context) ([]catalog.Movie, error) {
	out := []catalog.Movie{}
	err := r.db.WithContext(ctx).
		Preload("Actors").
		Preload("Genres").
		Order("views DESC, created_at DESC").
		Limit(mostPopularLimit).
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "most popular movies")
	}
	return out, nil
}

func (r *MovieRepository) ByActor(ctx context.Context, actorID uint) ([]catalog.Movie, error) {
	out := []catalog.Movie{}
	err := r.db.WithContext(ctx).
		Joins("JOIN movie_actors ON movie_actors.movie_id = movies.id").
		Where("movie_actors.actor_id = ?", actorID).
		Order("movies.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "movies by actor")
	}
	return out, nil
}

func (r *MovieRepository) ByGenres(ctx context.Context, genreIDs []uint) ([]catalog.Movie, error) {
	out := []catalog.Movie{}
	if len(genreIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Table("movie_genres").Select("movie_id").Where("genre_id IN ?", genreIDs)).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "movies by genres")
	}
	return out, nil
}

func (r *MovieRepository) IncrementViews(ctx context.Context, slug string) (*catalog.Movie, error) {
	res := r.db.WithContext(ctx).Model(&catalog.Movie{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if err := affected(res, "movie"); err != nil {
		return nil, err
	}

	var m catalog.Movie
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translate(err, "movie")
	}
	return &m, nil
}

// Create inserts an empty draft movie. The placeholder slug keeps the unique
// index satisfied until the first update sets a real title.
func (r *MovieRepository) Create(ctx context.Context) (uint, error) {
	m := catalog.Movie{Slug: "draft-" + uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, translate(err, "create movie")
	}
	return m.ID, nil
}

type MovieUpdate struct {
	Title     string
	Slug      string
	Poster    string
	BigPoster string
	VideoURL  string
	Country   string
	Year      int
	Duration  int
	GenreIDs  []uint
	ActorIDs  []uint
}

func (r *MovieRepository) Update(ctx context.Context, id uint, in MovieUpdate) (*catalog.Movie, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m catalog.Movie
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		slug, err := uniqueSlug(tx, &catalog.Movie{}, in.Slug, id)
		if err != nil {
			return err
		}

		err = tx.Model(&m).Updates(map[string]interface{}{
			"title":      in.Title,
			"slug":       slug,
			"poster":     in.Poster,
			"big_poster": in.BigPoster,
			"video_url":  in.VideoURL,
			"country":    in.Country,
			"year":       in.Year,
			"duration":   in.Duration,
		}).Error
		if err != nil {
			return err
		}

		if in.GenreIDs != nil {
			genres := []catalog.Genre{}
			if len(in.GenreIDs) > 0 {
				if err := tx.Where("id IN ?", in.GenreIDs).Find(&genres).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&m).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}

		if in.ActorIDs != nil {
			actors := []catalog.Actor{}
			if len(in.ActorIDs) > 0 {
				if err := tx.Where("id IN ?", in.ActorIDs).Find(&actors).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&m).Association("Actors").Replace(actors); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "movie")
	}
	return r.GetByID(ctx, id)
}

func (r *MovieRepository) Delete(ctx context.Context, id uint) (*catalog.Movie, error) {
	var m catalog.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		return tx.Select("Actors", "Genres").Delete(&m).Error
	})
	if err != nil {
		return nil, translate(err, "movie")
	}
	return &m, nil
}
