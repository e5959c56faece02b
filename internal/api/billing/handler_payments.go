package billing

import (
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /payment/history
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	orders, err := h.payments.ListForUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /payment/get/all
func (h *Handler) ListAllPayments(c *gin.Context) {
	orders, err := h.payments.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DELETE /payment/delete/:id
func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.BadRequest(c, "invalid id")
		return
	}
	order, err := h.payments.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
