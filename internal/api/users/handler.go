package users

import (
	"context"
	"net/http"
	"strings"

	"movie-app/internal/api/respond"
	"movie-app/internal/app/http/middleware"
	"movie-app/internal/domain/catalog"
	"movie-app/internal/domain/users"
	"movie-app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	GetByID(ctx context.Context, id uint) (*users.User, error)
	List(ctx context.Context, search string) ([]users.User, error)
	Update(ctx context.Context, id uint, in repository.UserUpdate) (*users.User, error)
	Delete(ctx context.Context, id uint) (*users.User, error)
	ToggleFavorite(ctx context.Context, userID, movieID uint) (bool, error)
	Favorites(ctx context.Context, userID uint) ([]catalog.Movie, error)
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// GET /users/profile
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.CurrentUserID(c)

	user, err := h.store.GetByID(ctx, id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	favorites, err := h.store.Favorites(ctx, id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: *user, Favorites: favorites})
}

// POST /users/profile/favorites
func (h *Handler) ToggleFavorite(c *gin.Context) {
	var input struct {
		MovieID uint `json:"movieId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	favorite, err := h.store.ToggleFavorite(c.Request.Context(), middleware.CurrentUserID(c), input.MovieID)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, FavoriteResponse{MovieID: input.MovieID, IsFavorite: favorite})
}

// GET /users/all?searchTerm=
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), strings.TrimSpace(c.Query("searchTerm")))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /users/get/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /users/update/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	if input.Role == "" {
		input.Role = users.RoleUser
	}

	user, err := h.store.Update(c.Request.Context(), id, repository.UserUpdate{
		Name:  input.Name,
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Role:  input.Role,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.UintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
