package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = bson.NewObjectID()
	}
	return insertOne(ctx, s.col(ColReviews), review)
}

func (s *Store) ListReviews(ctx context.Context, filter storage.ReviewFilter) ([]*models.Review, error) {
	doc := bson.D{}
	if filter.FoodID != "" {
		doc = append(doc, bson.E{Key: "foodId", Value: filter.FoodID})
	}
	if filter.UserEmail != "" {
		doc = append(doc, bson.E{Key: "userEmail", Value: filter.UserEmail})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[models.Review](ctx, s.col(ColReviews), doc, opts)
}

func (s *Store) UpdateReview(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	return updateFields(ctx, s.col(ColReviews), byID(id), setFromMap(fields))
}

func (s *Store) DeleteReview(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, s.col(ColReviews), id)
}
