package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses.
const (
	AppointmentPending   = "Pending"
	AppointmentConfirmed = "Confirmed"
	AppointmentCancelled = "Cancelled"
	AppointmentCompleted = "Completed"
)

// Appointment is a scheduled property visit.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	PropertyID      primitive.ObjectID `bson:"property_id" json:"propertyId"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status          string             `bson:"status" json:"status"`
	WhatsappUpdates bool               `bson:"whatsappUpdates,omitempty" json:"whatsappUpdates,omitempty"`
	ScheduleTime    time.Time          `bson:"schedule_Time" json:"scheduleTime"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// AllowedAppointmentStatuses is the closed set accepted by the status-update endpoint.
var AllowedAppointmentStatuses = map[string]bool{
	AppointmentPending:   true,
	AppointmentConfirmed: true,
	AppointmentCancelled: true,
	AppointmentCompleted: true,
}
