package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
)

func (s *Store) CreateRoleRequest(ctx context.Context, req *models.RoleRequest) error {
	if req.ID.IsZero() {
		req.ID = bson.NewObjectID()
	}
	return insertOne(ctx, s.col(ColRoleRequests), req)
}

func (s *Store) ListRoleRequests(ctx context.Context, email string) ([]*models.RoleRequest, error) {
	filter := bson.D{}
	if email != "" {
		filter = bson.D{{Key: "userEmail", Value: email}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[models.RoleRequest](ctx, s.col(ColRoleRequests), filter, opts)
}

func (s *Store) LatestRoleRequest(ctx context.Context, email string, requestType models.UserRole) (*models.RoleRequest, error) {
	filter := bson.D{
		{Key: "userEmail", Value: email},
		{Key: "requestType", Value: requestType},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var result models.RoleRequest
	if err := s.col(ColRoleRequests).FindOne(ctx, filter, opts).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

func (s *Store) CountPendingRoleRequests(ctx context.Context, email string, requestType models.UserRole) (int64, error) {
	filter := bson.D{
		{Key: "userEmail", Value: email},
		{Key: "requestType", Value: requestType},
		{Key: "status", Value: models.RequestPending},
	}
	n, err := s.col(ColRoleRequests).CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapError(err)
	}
	return n, nil
}

func (s *Store) SetRoleRequestStatus(ctx context.Context, id bson.ObjectID, status models.RequestStatus) error {
	return updateFields(ctx, s.col(ColRoleRequests), byID(id), bson.D{
		{Key: "status", Value: status},
	})
}
