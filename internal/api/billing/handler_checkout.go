package billing

import (
	"context"
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/app/http/middleware"
	"movie-app/internal/domain/billing"
	"movie-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Payments interface {
	Checkout(ctx context.Context, req service.CheckoutRequest, userID uint) (*service.CheckoutResult, error)
	ListAll(ctx context.Context) ([]billing.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]billing.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (*billing.Order, error)
}

type Handler struct {
	payments Payments
	log      *zap.Logger
}

func NewHandler(payments Payments, log *zap.Logger) *Handler {
	return &Handler{payments: payments, log: log}
}

// POST /payment
func (h *Handler) Checkout(c *gin.Context) {
	var body service.CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, "Missing or invalid amount")
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	res, err := h.payments.Checkout(c.Request.Context(), body, userID)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
