package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/service/leads"
)

// LeadHandler exposes the public capture endpoint and the authenticated
// funnel-management endpoints.
type LeadHandler struct {
	svc    *leads.Service
	logger *zap.Logger
}

func NewLeadHandler(svc *leads.Service, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{svc: svc, logger: logger}
}

type captureLeadRequest struct {
	SearchQuery string             `json:"searchQuery"`
	ContactInfo models.ContactInfo `json:"contactInfo"`
	Location    string             `json:"location"`
	Notes       string             `json:"notes"`
	Source      string             `json:"source"`
	Priority    string             `json:"priority"`
}

// Capture stores a visitor inquiry. Unauthenticated; the website widget posts
// here directly.
func (h *LeadHandler) Capture(c *gin.Context) {
	var req captureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SearchQuery == "" && req.ContactInfo.Phone == "" && req.ContactInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lead needs a search query or contact detail"})
		return
	}

	lead, err := h.svc.Capture(c.Request.Context(), models.Lead{
		SearchQuery: req.SearchQuery,
		ContactInfo: req.ContactInfo,
		Location:    req.Location,
		Notes:       req.Notes,
		Source:      req.Source,
		Priority:    req.Priority,
	})
	if err != nil {
		h.logger.Error("lead capture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to capture lead"})
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// List returns leads, newest first, with an optional ?status= filter.
func (h *LeadHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if errors.Is(err, leads.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead status"})
		return
	}
	if err != nil {
		h.logger.Error("lead listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leads"})
		return
	}
	if result == nil {
		result = []models.Lead{}
	}
	c.JSON(http.StatusOK, result)
}

type updateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a lead through the funnel.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err = h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, leads.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead status"})
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("lead status update failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "lead updated"})
}

// Delete removes a lead.
func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("lead deletion failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "lead deleted"})
}
