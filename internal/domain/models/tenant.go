package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment modes accepted on the embedded payment records.
const (
	PaymentModeCash   = "cash"
	PaymentModeOnline = "online"
)

// Payment is one rent payment embedded in the tenant document. There is no
// separate ledger collection; a tenant's full payment history lives here.
// Amount is a string for the same legacy-formatting reason as Property.Rate.
type Payment struct {
	DateOfPayment time.Time `bson:"dateOfPayment" json:"dateOfPayment"`
	Amount        string    `bson:"amount" json:"amount"`
	ModeOfPayment string    `bson:"modeOfPayment" json:"modeOfPayment"`
}

// Tenant occupies exactly one property. A tenant counts as paid for month M
// iff at least one embedded payment is dated within M.
type Tenant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	PropertyID   primitive.ObjectID `bson:"property_id" json:"propertyId"`
	FlatNo       string             `bson:"flatNo,omitempty" json:"flatNo,omitempty"`
	Society      string             `bson:"society,omitempty" json:"society,omitempty"`
	Members      string             `bson:"members,omitempty" json:"members,omitempty"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	Rent         string             `bson:"rent" json:"rent"`
	PropertyType string             `bson:"property_type,omitempty" json:"propertyType,omitempty"`
	Payments     []Payment          `bson:"Payments" json:"payments"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}
