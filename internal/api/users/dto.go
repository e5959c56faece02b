package users

import (
	"movie-app/internal/domain/catalog"
	"movie-app/internal/domain/users"
)

type ProfileResponse struct {
	users.User
	Favorites []catalog.Movie `json:"favorites"`
}

type FavoriteResponse struct {
	MovieID    uint `json:"movieId"`
	IsFavorite bool `json:"isFavorite"`
}

type updateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}
