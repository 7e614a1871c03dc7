package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactor runs units of work inside a MongoDB session transaction.
// Transactions need a replica set; when disabled the work runs directly.
type MongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

// NewMongoTransactor creates a transactor on the client.
func NewMongoTransactor(db *MongoDB, enabled bool) *MongoTransactor {
	return &MongoTransactor{client: db.Client, enabled: enabled}
}

// WithinTransaction runs fn in a transaction. A context that already carries
// a session joins it.
func (t *MongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
