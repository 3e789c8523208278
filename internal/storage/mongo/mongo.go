// Package mongo provides a MongoDB-backed implementation of the storage.Store interface.
//
// Sparse documents of this schema, with optional fields missing or with
// ObjectID keys, are tolerated on read. Other collection layouts are not
// mapped.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mmynk/kaskos/internal/storage"
)

// Collection names.
const (
	CollectionMembers       = "members"
	CollectionContributions = "contributions"
	CollectionExpenditures  = "expenditures"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on a MongoDB database.
type Store struct {
	client        *mongo.Client
	members       *mongo.Collection
	contributions *mongo.Collection
	expenditures  *mongo.Collection
}

// New connects to uri, verifies the connection and ensures indexes.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %v", storage.ErrUnavailable, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: failed to ping: %v", storage.ErrUnavailable, err)
	}

	db := client.Database(database)
	s := &Store{
		client:        client,
		members:       db.Collection(CollectionMembers),
		contributions: db.Collection(CollectionContributions),
		expenditures:  db.Collection(CollectionExpenditures),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create member index: %v", storage.ErrUnavailable, err)
	}

	_, err = s.contributions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "member", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create contribution index: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Ping checks the server connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %v", storage.ErrUnavailable, op, err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
