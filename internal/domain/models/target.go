package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TargetMonthlyRevenue is the KPI goal the monthly-revenue widget compares against.
const TargetMonthlyRevenue = "monthlyRevenue"

// Target is a single numeric KPI goal keyed by name.
type Target struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key   string             `bson:"key" json:"key"`
	Value float64            `bson:"value" json:"value"`
}
