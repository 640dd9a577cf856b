// Package mongostore implements storage.Store on MongoDB.
//
// Uses mongo-go-driver v2 with bson tags on the model structs. Collection
// names and indexes are managed in one place in ensureIndexes.
package mongostore

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	ColUsers        = "users"
	ColRoleRequests = "roleRequests"
	ColMeals        = "meals"
	ColOrders       = "orders"
	ColReviews      = "reviews"
	ColFavorites    = "favorites"
)

// Store is the MongoDB-backed persistence gateway. One Store is created
// at startup and shared for the process lifetime.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB, pings it, and ensures indexes.
//
// uri: connection URI, e.g. "mongodb://localhost:27017"
// dbName: database name, e.g. "local_chef_bazaar_db"
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{client: client, db: db}

	if err := s.ensureIndexes(ctx); err != nil {
		log.Printf("WARNING: mongostore: ensure indexes failed: %v", err)
	}

	return s, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes creates all required indexes. The unique index on
// favorites (userEmail, foodId) is what turns a duplicate favorite
// insert into storage.ErrDuplicate.
func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColRoleRequests, bson.D{{Key: "userEmail", Value: 1}, {Key: "requestType", Value: 1}, {Key: "createdAt", Value: -1}}, false},
		{ColRoleRequests, bson.D{{Key: "status", Value: 1}}, false},

		{ColMeals, bson.D{{Key: "chefEmail", Value: 1}}, false},
		{ColMeals, bson.D{{Key: "featured", Value: 1}}, false},
		{ColMeals, bson.D{{Key: "createdAt", Value: -1}}, false},

		{ColOrders, bson.D{{Key: "userEmail", Value: 1}}, false},
		{ColOrders, bson.D{{Key: "chefId", Value: 1}}, false},
		{ColOrders, bson.D{{Key: "transactionId", Value: 1}}, false},

		{ColReviews, bson.D{{Key: "foodId", Value: 1}}, false},
		{ColReviews, bson.D{{Key: "userEmail", Value: 1}}, false},

		{ColFavorites, bson.D{{Key: "userEmail", Value: 1}, {Key: "foodId", Value: 1}}, true},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
