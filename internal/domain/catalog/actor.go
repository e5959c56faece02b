package catalog

import "time"

type Actor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `json:"name"`
	Slug     string `gorm:"not null;uniqueIndex:idx_actors_slug" json:"slug"`
	PhotoURL string `gorm:"column:photo_url" json:"photoUrl"`

	Movies []Movie `gorm:"many2many:movie_actors;" json:"movies,omitempty"`
}
