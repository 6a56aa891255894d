package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// TargetRepository persists KPI goals.
type TargetRepository struct {
	coll *mongo.Collection
}

// NewTargetRepository wires the repository to the targets collection.
func NewTargetRepository(c *Client) *TargetRepository {
	return &TargetRepository{coll: c.db.Collection(collTargets)}
}

// GetValue returns the goal stored under key, or 0 when none is set. A
// missing target is a normal state, not an error.
func (r *TargetRepository) GetValue(ctx context.Context, key string) (float64, error) {
	var t models.Target
	err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find target %s: %w", key, err)
	}
	return t.Value, nil
}

// SetValue upserts the goal stored under key.
func (r *TargetRepository) SetValue(ctx context.Context, key string, value float64) error {
	update := bson.M{"$set": bson.M{"key": key, "value": value}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"key": key}, update, opts); err != nil {
		return fmt.Errorf("upsert target %s: %w", key, err)
	}
	return nil
}
