package reviews

import (
	"context"
	"fmt"
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/app/http/middleware"
	"movie-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, review *catalog.Review) error
	List(ctx context.Context) ([]catalog.Review, error)
	Delete(ctx context.Context, id uint) (*catalog.Review, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// POST /reviews/create/:movieId
func (h *Handler) Create(c *gin.Context) {
	movieID, ok := respond.UintParam(c, "movieId")
	if !ok {
		return
	}
	var input struct {
		Text   string `json:"text" binding:"required"`
		Rating int    `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	if input.Rating < catalog.MinRating || input.Rating > catalog.MaxRating {
		respond.BadRequest(c, fmt.Sprintf("rating must be between %d and %d", catalog.MinRating, catalog.MaxRating))
		return
	}

	review := &catalog.Review{
		Text:    input.Text,
		Rating:  input.Rating,
		UserID:  middleware.CurrentUserID(c),
		MovieID: movieID,
	}
	if err := h.store.Create(c.Request.Context(), review); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// GET /reviews/get/all
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DELETE /reviews/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	review, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
