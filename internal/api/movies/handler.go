package movies

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"movie-app/internal/api/respond"
	"movie-app/internal/apperr"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context, search string) ([]catalog.Movie, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Movie, error)
	GetByID(ctx context.Context, id uint) (*catalog.Movie, error)
	MostPopular(ctx context.Context) ([]catalog.Movie, error)
	ByActor(ctx context.Context, actorID uint) ([]catalog.Movie, error)
	ByGenres(ctx context.Context, genreIDs []uint) ([]catalog.Movie, error)
	IncrementViews(ctx context.Context, slug string) (*catalog.Movie, error)
	Create(ctx context.Context) (uint, error)
	Update(ctx context.Context, id uint, in repository.MovieUpdate) (*catalog.Movie, error)
	Delete(ctx context.Context, id uint) (*catalog.Movie, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

type movieInput struct {
	Title     string `json:"title" binding:"required"`
	Poster    string `json:"poster"`
	BigPoster string `json:"bigPoster"`
	VideoURL  string `json:"videoUrl"`
	Country   string `json:"country"`
	Year      int    `json:"year" binding:"gte=0"`
	Duration  int    `json:"duration" binding:"gte=0"`
	Genres    []uint `json:"genres"`
	Actors    []uint `json:"actors"`
}

// GET /movies/all?searchTerm=
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), strings.TrimSpace(c.Query("searchTerm")))
	h.write(c, list, err)
}

// GET /movies/get/by-slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	m, err := h.store.GetBySlug(c.Request.Context(), c.Param("slug"))
	h.write(c, m, err)
}

// GET /movies/get/most-popular
func (h *Handler) MostPopular(c *gin.Context) {
	list, err := h.store.MostPopular(c.Request.Context())
	h.write(c, list, err)
}

// GET /movies/get/by-actor/:id
func (h *Handler) ByActor(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	list, err := h.store.ByActor(c.Request.Context(), id)
	if err == nil && len(list) == 0 {
		err = fmt.Errorf("movies of actor %d: %w", id, apperr.ErrNotFound)
	}
	h.write(c, list, err)
}

// POST /movies/get/by-genres
func (h *Handler) ByGenres(c *gin.Context) {
	var input struct {
		GenreIDs []uint `json:"genresIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	list, err := h.store.ByGenres(c.Request.Context(), input.GenreIDs)
	h.write(c, list, err)
}

// PUT /movies/update-count-views
func (h *Handler) UpdateCountViews(c *gin.Context) {
	var input struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	m, err := h.store.IncrementViews(c.Request.Context(), input.Slug)
	h.write(c, m, err)
}

// GET /movies/get/by-id/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	m, err := h.store.GetByID(c.Request.Context(), id)
	h.write(c, m, err)
}

// POST /movies/create
func (h *Handler) Create(c *gin.Context) {
	id, err := h.store.Create(c.Request.Context())
	h.write(c, id, err)
}

// PUT /movies/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	var in movieInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	m, err := h.store.Update(c.Request.Context(), id, repository.MovieUpdate{
		Title:     in.Title,
		Slug:      catalog.MakeSlug(in.Title),
		Poster:    in.Poster,
		BigPoster: in.BigPoster,
		VideoURL:  in.VideoURL,
		Country:   in.Country,
		Year:      in.Year,
		Duration:  in.Duration,
		GenreIDs:  nonNil(in.Genres),
		ActorIDs:  nonNil(in.Actors),
	})
	h.write(c, m, err)
}

// DELETE /movies/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	m, err := h.store.Delete(c.Request.Context(), id)
	h.write(c, m, err)
}

func (h *Handler) write(c *gin.Context, v interface{}, err error) {
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// nonNil makes an omitted list clear the relation instead of leaving it.
func nonNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
