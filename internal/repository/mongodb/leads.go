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

// LeadRepository persists captured inquiries.
type LeadRepository struct {
	coll *mongo.Collection
}

// NewLeadRepository wires the repository to the leads collection.
func NewLeadRepository(c *Client) *LeadRepository {
	return &LeadRepository{coll: c.db.Collection(collLeads)}
}

// Insert stores a new lead.
func (r *LeadRepository) Insert(ctx context.Context, l models.Lead) (models.Lead, error) {
	now := time.Now()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return models.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

// FindByID loads a single lead.
func (r *LeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Lead, error) {
	var l models.Lead
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return models.Lead{}, fmt.Errorf("find lead %s: %w", id.Hex(), err)
	}
	return l, nil
}

// FindAll returns leads newest first, optionally filtered by status.
func (r *LeadRepository) FindAll(ctx context.Context, status string) ([]models.Lead, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

// FindByStatus returns every lead currently in the given funnel stage.
func (r *LeadRepository) FindByStatus(ctx context.Context, status string) ([]models.Lead, error) {
	return r.FindAll(ctx, status)
}

// FindActive returns the most recently touched leads that are still
// actionable (neither converted nor archived), limited to limit entries.
func (r *LeadRepository) FindActive(ctx context.Context, limit int64) ([]models.Lead, error) {
	filter := bson.M{"status": bson.M{"$nin": bson.A{models.LeadStatusConverted, models.LeadStatusArchived}}}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find active leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead to a new funnel stage.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update lead %s status: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a lead.
func (r *LeadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lead %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountAll counts every lead document.
func (r *LeadRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// CountCreatedBetween counts leads captured within [start, end).
func (r *LeadRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count leads in window: %w", err)
	}
	return n, nil
}

// CountByStatusGrouped returns lead counts grouped by funnel stage in a
// single aggregation round trip.
func (r *LeadRepository) CountByStatusGrouped(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group leads by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var doc struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lead status group: %w", err)
		}
		counts[doc.ID] = doc.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead status groups: %w", err)
	}
	return counts, nil
}
