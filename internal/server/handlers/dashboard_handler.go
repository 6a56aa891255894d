package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// DashboardService is the slice of the analytics service the handler needs.
type DashboardService interface {
	ComprehensiveStats(ctx context.Context) (models.DashboardPayload, error)
	RevenueSummary(ctx context.Context) (models.RevenueSummary, error)
	MonthlyRevenue(ctx context.Context) (models.MonthlyRevenue, error)
}

// DashboardHandler serves the aggregated analytics endpoints. Failures are
// all-or-nothing: any upstream error becomes a generic 500 with no partial
// payload and no internal detail leaked to the client.
type DashboardHandler struct {
	svc     DashboardService
	timeout time.Duration
	logger  *zap.Logger
}

func NewDashboardHandler(svc DashboardService, timeout time.Duration, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, timeout: timeout, logger: logger}
}

func (h *DashboardHandler) boundedCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// Comprehensive serves the full dashboard payload.
func (h *DashboardHandler) Comprehensive(c *gin.Context) {
	ctx, cancel := h.boundedCtx(c)
	defer cancel()

	payload, err := h.svc.ComprehensiveStats(ctx)
	if err != nil {
		h.logger.Error("comprehensive stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comprehensive stats"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// Revenue serves the standalone revenue summary.
func (h *DashboardHandler) Revenue(c *gin.Context) {
	ctx, cancel := h.boundedCtx(c)
	defer cancel()

	summary, err := h.svc.RevenueSummary(ctx)
	if err != nil {
		h.logger.Error("revenue summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Monthly serves current-month revenue against its configured target.
func (h *DashboardHandler) Monthly(c *gin.Context) {
	ctx, cancel := h.boundedCtx(c)
	defer cancel()

	monthly, err := h.svc.MonthlyRevenue(ctx)
	if err != nil {
		h.logger.Error("monthly revenue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monthly revenue"})
		return
	}

	c.JSON(http.StatusOK, monthly)
}
