package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	return insertOne(ctx, s.col(ColOrders), order)
}

func (s *Store) GetOrder(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	return findOne[models.Order](ctx, s.col(ColOrders), byID(id))
}

func (s *Store) ListOrders(ctx context.Context, filter storage.OrderFilter) ([]*models.Order, error) {
	doc := bson.D{}
	if filter.UserEmail != "" {
		doc = append(doc, bson.E{Key: "userEmail", Value: filter.UserEmail})
	}
	if filter.ChefID != "" {
		doc = append(doc, bson.E{Key: "chefId", Value: filter.ChefID})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[models.Order](ctx, s.col(ColOrders), doc, opts)
}

func (s *Store) GetOrderByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.col(ColOrders), bson.D{
		{Key: "transactionId", Value: transactionID},
	})
}

func (s *Store) SetOrderStatus(ctx context.Context, id bson.ObjectID, stage string) error {
	return updateFields(ctx, s.col(ColOrders), byID(id), bson.D{
		{Key: "orderStatus", Value: stage},
	})
}

func (s *Store) MarkOrderPaid(ctx context.Context, id bson.ObjectID, transactionID, trackingID string) error {
	return updateFields(ctx, s.col(ColOrders), byID(id), bson.D{
		{Key: "paymentStatus", Value: models.PaymentPaid},
		{Key: "transactionId", Value: transactionID},
		{Key: "trackingId", Value: trackingID},
	})
}
