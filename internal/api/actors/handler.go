package actors

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
	List(ctx context.Context, search string) ([]catalog.Actor, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Actor, error)
	GetByID(ctx context.Context, id uint) (*catalog.Actor, error)
	Create(ctx context.Context) (uint, error)
	Update(ctx context.Context, id uint, in repository.ActorUpdate) (*catalog.Actor, error)
	Delete(ctx context.Context, id uint) (*catalog.Actor, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// GET /actors/all?searchTerm=
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), strings.TrimSpace(c.Query("searchTerm")))
	h.write(c, list, err)
}

// GET /actors/get/by-slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	a, err := h.store.GetBySlug(c.Request.Context(), c.Param("slug"))
	h.write(c, a, err)
}

// GET /actors/get/by-id/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	a, err := h.store.GetByID(c.Request.Context(), id)
	h.write(c, a, err)
}

// POST /actors/create
func (h *Handler) Create(c *gin.Context) {
	id, err := h.store.Create(c.Request.Context())
	h.write(c, id, err)
}

// PUT /actors/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Name  string `json:"name" binding:"required"`
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	a, err := h.store.Update(c.Request.Context(), id, repository.ActorUpdate{
		Name:     input.Name,
		Slug:     catalog.MakeSlug(input.Name),
		PhotoURL: input.Photo,
	})
	h.write(c, a, err)
}

// DELETE /actors/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	a, err := h.store.Delete(c.Request.Context(), id)
	h.write(c, a, err)
}

func (h *Handler) write(c *gin.Context, v interface{}, err error) {
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
