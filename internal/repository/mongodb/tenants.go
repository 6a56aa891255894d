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

// TenantRepository persists tenants with their embedded payment history.
type TenantRepository struct {
	coll *mongo.Collection
}

// NewTenantRepository wires the repository to the tenants collection.
func NewTenantRepository(c *Client) *TenantRepository {
	return &TenantRepository{coll: c.db.Collection(collTenants)}
}

// Insert stores a new tenant.
func (r *TenantRepository) Insert(ctx context.Context, t models.Tenant) (models.Tenant, error) {
	now := time.Now()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Payments == nil {
		t.Payments = []models.Payment{}
	}

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return models.Tenant{}, fmt.Errorf("insert tenant: %w", err)
	}
	return t, nil
}

// FindByID loads a single tenant.
func (r *TenantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Tenant, error) {
	var t models.Tenant
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Tenant{}, fmt.Errorf("find tenant %s: %w", id.Hex(), err)
	}
	return t, nil
}

// FindAll returns every tenant document, payment history included. The
// dashboard fetches this once per request and reduces in memory rather than
// issuing per-tenant queries.
func (r *TenantRepository) FindAll(ctx context.Context) ([]models.Tenant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer cursor.Close(ctx)

	var tenants []models.Tenant
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("decode tenants: %w", err)
	}
	return tenants, nil
}

// Update applies the given field set to a tenant.
func (r *TenantRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update tenant %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a tenant.
func (r *TenantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tenant %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddPayment appends a payment record to the tenant's embedded history.
func (r *TenantRepository) AddPayment(ctx context.Context, id primitive.ObjectID, p models.Payment) error {
	update := bson.M{
		"$push": bson.M{"Payments": p},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("add payment to tenant %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
