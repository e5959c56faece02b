package catalog

import "time"

type Movie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title     string `json:"title"`
	Slug      string `gorm:"not null;uniqueIndex:idx_movies_slug" json:"slug"`
	Poster    string `json:"poster"`
	BigPoster string `json:"bigPoster"`
	VideoURL  string `gorm:"column:video_url" json:"videoUrl"`
	Country   string `json:"country"`
	Year      int    `json:"year"`
	Duration  int    `json:"duration"`
	Views     int    `gorm:"not null;default:0;index" json:"views"`

	Actors  []Actor  `gorm:"many2many:movie_actors;" json:"actors"`
	Genres  []Genre  `gorm:"many2many:movie_genres;" json:"genres"`
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}
