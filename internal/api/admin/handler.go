package admin

import (
	"context"
	"net/http"
	"time"

	"movie-app/internal/api/respond"
	"movie-app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const recentWindow = 30 * 24 * time.Hour

type StatisticsStore interface {
	Main(ctx context.Context, since time.Time) (*repository.Statistics, error)
}

type Handler struct {
	stats StatisticsStore
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(stats StatisticsStore, log *zap.Logger) *Handler {
	return &Handler{stats: stats, log: log, now: time.Now}
}

// GET /statistics/main
func (h *Handler) MainStatistics(c *gin.Context) {
	stats, err := h.stats.Main(c.Request.Context(), h.now().Add(-recentWindow))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
