package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
)

// TenantHandler exposes tenant CRUD and the embedded payment ledger.
type TenantHandler struct {
	repo   *mongodb.TenantRepository
	logger *zap.Logger
}

func NewTenantHandler(repo *mongodb.TenantRepository, logger *zap.Logger) *TenantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantHandler{repo: repo, logger: logger}
}

type createTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	PropertyID   string `json:"propertyId" binding:"required"`
	FlatNo       string `json:"flatNo"`
	Society      string `json:"society"`
	Members      string `json:"members"`
	StartDate    string `json:"startDate"`
	Rent         string `json:"rent" binding:"required"`
	PropertyType string `json:"propertyType"`
}

// Create registers a tenant against an existing property.
func (h *TenantHandler) Create(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be RFC3339"})
			return
		}
		startDate = parsed
	}

	tenant, err := h.repo.Insert(c.Request.Context(), models.Tenant{
		Name:         req.Name,
		PropertyID:   propertyID,
		FlatNo:       req.FlatNo,
		Society:      req.Society,
		Members:      req.Members,
		StartDate:    startDate,
		Rent:         req.Rent,
		PropertyType: req.PropertyType,
	})
	if err != nil {
		h.logger.Error("tenant creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// List returns all tenants.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("tenant listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenants"})
		return
	}
	if tenants == nil {
		tenants = []models.Tenant{}
	}
	c.JSON(http.StatusOK, tenants)
}

// Get returns one tenant by id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	tenant, err := h.repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	if err != nil {
		h.logger.Error("tenant lookup failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenant"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

type updateTenantRequest struct {
	Name         *string `json:"name"`
	PropertyID   *string `json:"propertyId"`
	FlatNo       *string `json:"flatNo"`
	Society      *string `json:"society"`
	Members      *string `json:"members"`
	StartDate    *string `json:"startDate"`
	Rent         *string `json:"rent"`
	PropertyType *string `json:"propertyType"`
}

// fields translates the request into stored field names; propertyId and
// propertyType map to property_id/property_type in the document.
func (r updateTenantRequest) fields() (bson.M, error) {
	set := bson.M{}
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.PropertyID != nil {
		propertyID, err := primitive.ObjectIDFromHex(*r.PropertyID)
		if err != nil {
			return nil, errors.New("invalid property id")
		}
		set["property_id"] = propertyID
	}
	if r.FlatNo != nil {
		set["flatNo"] = *r.FlatNo
	}
	if r.Society != nil {
		set["society"] = *r.Society
	}
	if r.Members != nil {
		set["members"] = *r.Members
	}
	if r.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *r.StartDate)
		if err != nil {
			return nil, errors.New("startDate must be RFC3339")
		}
		set["startDate"] = startDate
	}
	if r.Rent != nil {
		set["rent"] = *r.Rent
	}
	if r.PropertyType != nil {
		set["property_type"] = *r.PropertyType
	}
	return set, nil
}

// Update applies a partial document update. Identity, timestamps, and the
// payment history cannot be overwritten through this endpoint.
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields, err := req.fields()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields"})
		return
	}

	err = h.repo.Update(c.Request.Context(), id, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	if err != nil {
		h.logger.Error("tenant update failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant updated"})
}

// Delete removes a tenant.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	if err != nil {
		h.logger.Error("tenant deletion failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
}

type recordPaymentRequest struct {
	DateOfPayment string `json:"dateOfPayment"`
	Amount        string `json:"amount" binding:"required"`
	ModeOfPayment string `json:"modeOfPayment" binding:"required,oneof=cash online"`
}

// RecordPayment appends a payment to the tenant's embedded history.
func (h *TenantHandler) RecordPayment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	paidAt := time.Now().UTC()
	if req.DateOfPayment != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateOfPayment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfPayment must be RFC3339"})
			return
		}
		paidAt = parsed
	}

	err = h.repo.AddPayment(c.Request.Context(), id, models.Payment{
		DateOfPayment: paidAt,
		Amount:        req.Amount,
		ModeOfPayment: req.ModeOfPayment,
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	if err != nil {
		h.logger.Error("payment record failed", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded"})
}
