package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	return insertOne(ctx, s.col(ColUsers), user)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.col(ColUsers), byEmail(email))
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[models.User](ctx, s.col(ColUsers), bson.D{}, opts)
}

func (s *Store) UpdateUserStatus(ctx context.Context, email, status string) error {
	return updateFields(ctx, s.col(ColUsers), byEmail(email), bson.D{
		{Key: "status", Value: status},
	})
}

func (s *Store) SetUserRole(ctx context.Context, email string, role models.UserRole, chefID string) error {
	set := bson.D{{Key: "role", Value: role}}
	if chefID != "" {
		set = append(set, bson.E{Key: "chefId", Value: chefID})
	}
	return updateFields(ctx, s.col(ColUsers), byEmail(email), set)
}

func (s *Store) SetUserRequestMarker(ctx context.Context, email, requestType, marker string) error {
	return updateFields(ctx, s.col(ColUsers), byEmail(email), bson.D{
		{Key: "requests." + requestType, Value: marker},
	})
}
