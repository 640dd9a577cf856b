package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
)

func (s *Store) CreateFavorite(ctx context.Context, fav *models.Favorite) error {
	if fav.ID.IsZero() {
		fav.ID = bson.NewObjectID()
	}
	// Duplicate (userEmail, foodId) pairs are refused by the unique index.
	return insertOne(ctx, s.col(ColFavorites), fav)
}

func (s *Store) ListFavorites(ctx context.Context, email string) ([]*models.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[models.Favorite](ctx, s.col(ColFavorites), bson.D{
		{Key: "userEmail", Value: email},
	}, opts)
}

func (s *Store) DeleteFavorite(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, s.col(ColFavorites), id)
}
