package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
	"github.com/brickbase/estate-backend/internal/server/middleware"
)

// AppointmentHandler exposes visit scheduling.
type AppointmentHandler struct {
	repo   *mongodb.AppointmentRepository
	logger *zap.Logger
}

func NewAppointmentHandler(repo *mongodb.AppointmentRepository, logger *zap.Logger) *AppointmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentHandler{repo: repo, logger: logger}
}

type createAppointmentRequest struct {
	PropertyID      string `json:"propertyId" binding:"required"`
	Phone           string `json:"phone"`
	WhatsappUpdates bool   `json:"whatsappUpdates"`
	ScheduleTime    string `json:"scheduleTime" binding:"required"`
}

// Create books a visit for the authenticated user. New appointments always
// start Pending.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	scheduleTime, err := time.Parse(time.RFC3339, req.ScheduleTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduleTime must be RFC3339"})
		return
	}
	if scheduleTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduleTime must be in the future"})
		return
	}

	appointment := models.Appointment{
		PropertyID:      propertyID,
		Phone:           req.Phone,
		WhatsappUpdates: req.WhatsappUpdates,
		ScheduleTime:    scheduleTime,
	}
	if raw := c.GetString(middleware.CtxUserID); raw != "" {
		if userID, err := primitive.ObjectIDFromHex(raw); err == nil {
			appointment.UserID = userID
		}
	}

	saved, err := h.repo.Insert(c.Request.Context(), appointment)
	if err != nil {
		h.logger.Error("appointment creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// List returns appointments with an optional ?status= filter.
func (h *AppointmentHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.AllowedAppointmentStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment status"})
		return
	}

	appointments, err := h.repo.FindAll(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("appointment listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch appointments"})
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appointments)
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus confirms, cancels, or completes a visit.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req updateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !models.AllowedAppointmentStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment status"})
		return
	}

	err = h.repo.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		h.logger.Error("appointment status update failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment updated"})
}

// Delete removes an appointment.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		h.logger.Error("appointment deletion failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}
