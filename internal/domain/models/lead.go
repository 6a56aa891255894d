package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead funnel statuses, in forward order. The data layer does not enforce
// monotonic progression; status is whatever the sales flow last set.
const (
	LeadStatusNew       = "new"
	LeadStatusInquiry   = "inquiry"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusArchived  = "archived"
)

// Lead priorities.
const (
	LeadPriorityLow    = "low"
	LeadPriorityMedium = "medium"
	LeadPriorityHigh   = "high"
)

// ContactInfo holds whatever the visitor left behind; all fields optional.
type ContactInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Lead is a captured buyer/renter inquiry.
type Lead struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SearchQuery       string               `bson:"searchQuery,omitempty" json:"searchQuery,omitempty"`
	ContactInfo       ContactInfo          `bson:"contactInfo" json:"contactInfo"`
	Location          string               `bson:"location,omitempty" json:"location,omitempty"`
	Status            string               `bson:"status" json:"status"`
	Notes             string               `bson:"notes,omitempty" json:"notes,omitempty"`
	Source            string               `bson:"source,omitempty" json:"source,omitempty"`
	Priority          string               `bson:"priority,omitempty" json:"priority,omitempty"`
	MatchedProperties []primitive.ObjectID `bson:"matchedProperties,omitempty" json:"matchedProperties,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// AllowedLeadStatuses is the closed set accepted by the status-update endpoint.
var AllowedLeadStatuses = map[string]bool{
	LeadStatusNew:       true,
	LeadStatusInquiry:   true,
	LeadStatusContacted: true,
	LeadStatusConverted: true,
	LeadStatusArchived:  true,
}
