package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// PropertySearch carries the supported listing filters.
type PropertySearch struct {
	City         string
	Category     string
	Availability *bool
}

// PropertyRepository persists property listings.
type PropertyRepository struct {
	coll *mongo.Collection
}

// NewPropertyRepository wires the repository to the properties collection.
func NewPropertyRepository(c *Client) *PropertyRepository {
	return &PropertyRepository{coll: c.db.Collection(collProperties)}
}

// Insert stores a new property and returns it with its generated ID.
func (r *PropertyRepository) Insert(ctx context.Context, p models.Property) (models.Property, error) {
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return models.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

// FindByID loads a single property.
func (r *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var p models.Property
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Property{}, fmt.Errorf("find property %s: %w", id.Hex(), err)
	}
	return p, nil
}

// Search returns listings matching the given filters.
func (r *PropertyRepository) Search(ctx context.Context, q PropertySearch) ([]models.Property, error) {
	filter := bson.M{}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Availability != nil {
		filter["availability"] = *q.Availability
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// FindAll returns every property document.
func (r *PropertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	return r.Search(ctx, PropertySearch{})
}

// FindOccupied returns every currently let or sold property.
func (r *PropertyRepository) FindOccupied(ctx context.Context) ([]models.Property, error) {
	occupied := false
	return r.Search(ctx, PropertySearch{Availability: &occupied})
}

// Update applies the given field set to a property. Identity fields are
// stripped by the handler before this is called.
func (r *PropertyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update property %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a property.
func (r *PropertyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountAll counts every property document.
func (r *PropertyRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// CountOccupied counts properties that are currently let or sold.
func (r *PropertyRepository) CountOccupied(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"availability": false})
	if err != nil {
		return 0, fmt.Errorf("count occupied properties: %w", err)
	}
	return n, nil
}

// CountOccupiedBetween counts properties whose occupancy state last changed
// within [start, end). UpdatedAt is the best available proxy for the
// occupancy transition; the schema records no explicit vacated date.
func (r *PropertyRepository) CountOccupiedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	filter := bson.M{
		"availability": false,
		"updatedAt":    bson.M{"$gte": start, "$lt": end},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count occupied properties in window: %w", err)
	}
	return n, nil
}

// FindOccupiedBetween returns occupied properties whose state changed within
// [start, end), used by the monthly-revenue widget.
func (r *PropertyRepository) FindOccupiedBetween(ctx context.Context, start, end time.Time) ([]models.Property, error) {
	filter := bson.M{
		"availability": false,
		"updatedAt":    bson.M{"$gte": start, "$lt": end},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find occupied properties in window: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}
