package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/cache"
	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
)

// PropertyHandler exposes listing CRUD. Reads go through the redis cache;
// every write invalidates it.
type PropertyHandler struct {
	repo   *mongodb.PropertyRepository
	cache  *cache.PropertyCache
	logger *zap.Logger
}

// NewPropertyHandler constructs the HTTP handler adapter.
func NewPropertyHandler(repo *mongodb.PropertyRepository, propertyCache *cache.PropertyCache, logger *zap.Logger) *PropertyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyHandler{repo: repo, cache: propertyCache, logger: logger}
}

type createPropertyRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Rate           string   `json:"rate" binding:"required"`
	Category       string   `json:"category" binding:"required,oneof=rent sale pg"`
	FurnishingType string   `json:"furnishingType"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Area           string   `json:"area"`
	Bed            int      `json:"bed"`
	Bathroom       int      `json:"bathroom"`
	Images         []string `json:"images"`
	Availability   *bool    `json:"availability"`
}

// Create inserts a new listing. Availability defaults to true (vacant).
func (h *PropertyHandler) Create(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	property, err := h.repo.Insert(c.Request.Context(), models.Property{
		Name:           req.Name,
		Description:    req.Description,
		Rate:           req.Rate,
		Category:       req.Category,
		FurnishingType: req.FurnishingType,
		City:           req.City,
		State:          req.State,
		Area:           req.Area,
		Bed:            req.Bed,
		Bathroom:       req.Bathroom,
		Images:         req.Images,
		Availability:   availability,
	})
	if err != nil {
		h.logger.Error("property creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	go h.cache.Invalidate(context.Background())

	c.JSON(http.StatusCreated, property)
}

// List serves the property search, via the cache when possible.
func (h *PropertyHandler) List(c *gin.Context) {
	query := c.Request.URL.Query()
	key := cache.Key(query)

	if body, ok := h.cache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	search := mongodb.PropertySearch{
		City:     c.Query("city"),
		Category: c.Query("category"),
	}
	if raw := c.Query("availability"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability value"})
			return
		}
		search.Availability = &avail
	}

	properties, err := h.repo.Search(c.Request.Context(), search)
	if err != nil {
		h.logger.Error("property search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}

	body, err := json.Marshal(properties)
	if err != nil {
		h.logger.Error("property serialization failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode response"})
		return
	}

	h.cache.Set(c.Request.Context(), key, body)
	c.Data(http.StatusOK, "application/json", body)
}

// Get returns one listing.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	property, err := h.repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		h.logger.Error("property fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

type updatePropertyRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Rate           *string   `json:"rate"`
	Category       *string   `json:"category" binding:"omitempty,oneof=rent sale pg"`
	FurnishingType *string   `json:"furnishingType"`
	City           *string   `json:"city"`
	State          *string   `json:"state"`
	Area           *string   `json:"area"`
	Bed            *int      `json:"bed"`
	Bathroom       *int      `json:"bathroom"`
	Images         *[]string `json:"images"`
	Availability   *bool     `json:"availability"`
}

// fields translates the request into stored field names. Several bson tags
// differ from the API's JSON shape (property_name vs name), so the client
// body must never reach $set verbatim.
func (r updatePropertyRequest) fields() bson.M {
	set := bson.M{}
	if r.Name != nil {
		set["property_name"] = *r.Name
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.Rate != nil {
		set["rate"] = *r.Rate
	}
	if r.Category != nil {
		set["category"] = *r.Category
	}
	if r.FurnishingType != nil {
		set["furnishing_type"] = *r.FurnishingType
	}
	if r.City != nil {
		set["city"] = *r.City
	}
	if r.State != nil {
		set["state"] = *r.State
	}
	if r.Area != nil {
		set["area"] = *r.Area
	}
	if r.Bed != nil {
		set["bed"] = *r.Bed
	}
	if r.Bathroom != nil {
		set["bathroom"] = *r.Bathroom
	}
	if r.Images != nil {
		set["images"] = *r.Images
	}
	if r.Availability != nil {
		set["availability"] = *r.Availability
	}
	return set
}

// Update applies a partial update to a listing. Identity and bookkeeping
// fields are not client-writable.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields"})
		return
	}

	err = h.repo.Update(c.Request.Context(), id, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		h.logger.Error("property update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update property"})
		return
	}

	go h.cache.Invalidate(context.Background())

	c.JSON(http.StatusOK, gin.H{"message": "property updated"})
}

// Delete removes a listing.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		h.logger.Error("property deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}

	go h.cache.Invalidate(context.Background())

	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
