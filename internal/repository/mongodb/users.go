package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// ErrUserNotFound reports a lookup miss without leaking driver internals to
// the auth service.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists accounts.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository wires the repository to the users collection.
func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{coll: c.db.Collection(collUsers)}
}

// Insert stores a new user, defaulting the role to "user".
func (r *UserRepository) Insert(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindByEmail loads a user by email, returning ErrUserNotFound on a miss.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}
