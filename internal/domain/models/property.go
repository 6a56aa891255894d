package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property categories as stored in the listings collection.
const (
	CategoryRent = "rent"
	CategorySale = "sale"
	CategoryPG   = "pg"
)

// Property is a single listed unit. Rate is stored as a string because legacy
// records carry currency symbols and thousand separators; parse it with
// money.Parse, never directly.
type Property struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"property_name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Rate           string             `bson:"rate" json:"rate"`
	Category       string             `bson:"category" json:"category"`
	FurnishingType string             `bson:"furnishing_type,omitempty" json:"furnishingType,omitempty"`
	City           string             `bson:"city,omitempty" json:"city,omitempty"`
	State          string             `bson:"state,omitempty" json:"state,omitempty"`
	Area           string             `bson:"area,omitempty" json:"area,omitempty"`
	Bed            int                `bson:"bed,omitempty" json:"bed,omitempty"`
	Bathroom       int                `bson:"bathroom,omitempty" json:"bathroom,omitempty"`
	Images         []string           `bson:"images,omitempty" json:"images,omitempty"`
	TotalViews     int64              `bson:"total_views,omitempty" json:"totalViews,omitempty"`
	// Availability false means the unit is currently let or sold. UpdatedAt
	// doubles as the occupancy-state-change proxy; there is no explicit
	// vacated/occupied transition date in the schema.
	Availability bool      `bson:"availability" json:"availability"`
	CreatedAt    time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}
