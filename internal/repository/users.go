package repository

import (
	"context"

	"movie-app/internal/domain/catalog"
	"movie-app/internal/domain/users"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *users.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *UserRepository) Save(ctx context.Context, u *users.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error, "save user")
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByGoogleSub(ctx context.Context, sub string) (*users.User, error) {
	var u users.User
	if err := r.db.WithContext(ctx).Where("google_sub = ?", sub).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// List returns users newest first. A non-empty search term matches name or
// email, case-insensitively.
func (r *UserRepository) List(ctx context.Context, search string) ([]users.User, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if search != "" {
		p := likePattern(search)
		q = q.Where("name ILIKE ? OR email ILIKE ?", p, p)
	}

	out := []users.User{}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err, "list users")
	}
	return out, nil
}

type UserUpdate struct {
	Name  string
	Email string
	Role  string
}

func (r *UserRepository) Update(ctx context.Context, id uint, in UserUpdate) (*users.User, error) {
	res := r.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  in.Name,
		"email": in.Email,
		"role":  in.Role,
	})
	if err := affected(res, "user"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) (*users.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := affected(r.db.WithContext(ctx).Delete(&users.User{}, id), "user"); err != nil {
		return nil, err
	}
	return u, nil
}

// ToggleFavorite adds the movie to the user's favorites, or removes it when
// already present. It reports whether the movie is a favorite afterwards.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID, movieID uint) (bool, error) {
	favorite := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&catalog.Movie{}, movieID).Error; err != nil {
			return translate(err, "movie")
		}

		res := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&catalog.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		favorite = true
		return tx.Create(&catalog.Favorite{UserID: userID, MovieID: movieID}).Error
	})
	if err != nil {
		return false, translate(err, "toggle favorite")
	}
	return favorite, nil
}

func (r *UserRepository) Favorites(ctx context.Context, userID uint) ([]catalog.Movie, error) {
	out := []catalog.Movie{}
	err := r.db.WithContext(ctx).
		Joins("JOIN user_favorites ON user_favorites.movie_id = movies.id").
		Where("user_favorites.user_id = ?", userID).
		Order("user_favorites.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "favorites")
	}
	return out, nil
}
