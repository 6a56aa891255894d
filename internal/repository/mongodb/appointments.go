package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// AppointmentRepository persists visit bookings.
type AppointmentRepository struct {
	coll *mongo.Collection
}

// NewAppointmentRepository wires the repository to the appointments collection.
func NewAppointmentRepository(c *Client) *AppointmentRepository {
	return &AppointmentRepository{coll: c.db.Collection(collAppointments)}
}

// Insert stores a new appointment, defaulting status to Pending.
func (r *AppointmentRepository) Insert(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	now := time.Now()
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return models.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return a, nil
}

// FindAll returns appointments newest first, optionally filtered by status.
func (r *AppointmentRepository) FindAll(ctx context.Context, status string) ([]models.Appointment, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appointments, nil
}

// FindByStatusScheduledBetween returns appointments in the given status whose
// visit time falls within [start, end). Used by the reminder job.
func (r *AppointmentRepository) FindByStatusScheduledBetween(ctx context.Context, status string, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status":        status,
		"schedule_Time": bson.M{"$gte": start, "$lt": end},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find scheduled appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus moves an appointment to a new status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update appointment %s status: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete appointment %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByStatusBetween counts appointments in the given status created within
// [start, end).
func (r *AppointmentRepository) CountByStatusBetween(ctx context.Context, status string, start, end time.Time) (int64, error) {
	filter := bson.M{
		"status":    status,
		"createdAt": bson.M{"$gte": start, "$lt": end},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count appointments in window: %w", err)
	}
	return n, nil
}
