package auth

import (
	"context"
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, in service.Credentials) (*service.Session, error)
	Login(ctx context.Context, in service.Credentials) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	GoogleSignIn(ctx context.Context, id service.GoogleIdentity) (*service.Session, error)
}

type Handler struct {
	svc Service
	log *zap.Logger
}

func NewHandler(svc Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	sess, err := h.svc.Register(c.Request.Context(), service.Credentials{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), service.Credentials{Email: input.Email, Password: input.Password})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /auth/login/access-token
func (h *Handler) NewTokens(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in"})
		return
	}

	sess, err := h.svc.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
