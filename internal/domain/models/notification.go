package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the scheduled jobs and the CRUD layer.
const (
	NotificationAppointmentReminder = "appointment_reminder"
	NotificationRentDue             = "rent_due"
	NotificationGeneral             = "general"
)

// Notification is an in-app message. UserID is zero for broadcast entries.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}
