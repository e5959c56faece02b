package catalog

import (
	"time"

	"movie-app/internal/domain/users"
)

const (
	MinRating = 1
	MaxRating = 10
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Text   string `json:"text"`
	Rating int    `json:"rating"`

	UserID  uint       `gorm:"not null;index" json:"userId"`
	User    users.User `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	MovieID uint       `gorm:"not null;index" json:"movieId"`
}

// Favorite links a user to a movie they marked as favorite.
type Favorite struct {
	UserID    uint       `gorm:"primaryKey"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE"`
	MovieID   uint       `gorm:"primaryKey"`
	Movie     Movie      `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Favorite) TableName() string {
	return "user_favorites"
}
