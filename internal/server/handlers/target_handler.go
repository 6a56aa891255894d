package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
)

// targetKeys is the closed set of configurable goals.
var targetKeys = map[string]bool{
	models.TargetMonthlyRevenue: true,
}

// TargetHandler reads and writes admin-configurable KPI goals.
type TargetHandler struct {
	repo   *mongodb.TargetRepository
	logger *zap.Logger
}

func NewTargetHandler(repo *mongodb.TargetRepository, logger *zap.Logger) *TargetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TargetHandler{repo: repo, logger: logger}
}

// Get returns the stored value for one target key, zero when unset.
func (h *TargetHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !targetKeys[key] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown target"})
		return
	}

	value, err := h.repo.GetValue(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("target lookup failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch target"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

type setTargetRequest struct {
	Value float64 `json:"value" binding:"required,gt=0"`
}

// Set upserts a target value.
func (h *TargetHandler) Set(c *gin.Context) {
	key := c.Param("key")
	if !targetKeys[key] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown target"})
		return
	}

	var req setTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a positive number"})
		return
	}

	if err := h.repo.SetValue(c.Request.Context(), key, req.Value); err != nil {
		h.logger.Error("target update failed", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update target"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
