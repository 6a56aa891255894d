// Package mongodb implements the entity store: one repository per collection,
// each exposing the document CRUD plus the counting/summing primitives the
// dashboard engine aggregates over.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collProperties    = "properties"
	collTenants       = "tenants"
	collLeads         = "leads"
	collAppointments  = "appointments"
	collTargets       = "targets"
	collNotifications = "notifications"
	collUsers         = "users"
)

// Client wraps the mongo connection and database handle shared by the
// repositories.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes and verifies a MongoDB connection.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
