package catalog

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `json:"name"`
	Slug        string `gorm:"not null;uniqueIndex:idx_genres_slug" json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
