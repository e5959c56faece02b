// Package paymentwebhook receives payment provider notifications.
package paymentwebhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"movie-app/internal/api/respond"
	"movie-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 65536

type Processor interface {
	HandleWebhook(ctx context.Context, payload []byte, headers http.Header) error
}

type Handler struct {
	processor Processor
	log       *zap.Logger
}

func NewHandler(p Processor, log *zap.Logger) *Handler {
	return &Handler{processor: p, log: log}
}

// POST /payment/status
//
// Accepted deliveries are answered with 200 and `true`, including events the
// application does not act on. A non-2xx answer makes the provider retry.
func (h *Handler) PaymentStatus(c *gin.Context) {
	payload, err := readBody(c, maxBodyBytes)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return
	}

	err = h.processor.HandleWebhook(c.Request.Context(), payload, c.Request.Header)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, true)
	case errors.Is(err, apperr.ErrInvalidSignature):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
	default:
		respond.Error(c, h.log, err)
	}
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
