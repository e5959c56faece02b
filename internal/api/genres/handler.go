package genres

import (
	"context"
	"net/http"
	"strings"

	"movie-app/internal/api/respond"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context, search string) ([]catalog.Genre, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Genre, error)
	GetByID(ctx context.Context, id uint) (*catalog.Genre, error)
	Create(ctx context.Context) (uint, error)
	Update(ctx context.Context, id uint, in repository.GenreUpdate) (*catalog.Genre, error)
	Delete(ctx context.Context, id uint) (*catalog.Genre, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), strings.TrimSpace(c.Query("searchTerm")))
	h.write(c, list, err)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	g, err := h.store.GetBySlug(c.Request.Context(), c.Param("slug"))
	h.write(c, g, err)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	g, err := h.store.GetByID(c.Request.Context(), id)
	h.write(c, g, err)
}

func (h *Handler) Create(c *gin.Context) {
	id, err := h.store.Create(c.Request.Context())
	h.write(c, id, err)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	g, err := h.store.Update(c.Request.Context(), id, repository.GenreUpdate{
		Name:        input.Name,
		Slug:        catalog.MakeSlug(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
	})
	h.write(c, g, err)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	g, err := h.store.Delete(c.Request.Context(), id)
	h.write(c, g, err)
}

func (h *Handler) write(c *gin.Context, v interface{}, err error) {
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
