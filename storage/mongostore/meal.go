package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

func mealFilterDoc(filter storage.MealFilter) bson.D {
	doc := bson.D{}
	if filter.ChefEmail != "" {
		doc = append(doc, bson.E{Key: "chefEmail", Value: filter.ChefEmail})
	}
	if filter.Featured != nil {
		doc = append(doc, bson.E{Key: "featured", Value: *filter.Featured})
	}
	return doc
}

func (s *Store) CreateMeal(ctx context.Context, meal *models.Meal) error {
	if meal.ID.IsZero() {
		meal.ID = bson.NewObjectID()
	}
	return insertOne(ctx, s.col(ColMeals), meal)
}

func (s *Store) GetMeal(ctx context.Context, id bson.ObjectID) (*models.Meal, error) {
	return findOne[models.Meal](ctx, s.col(ColMeals), byID(id))
}

func (s *Store) ListMeals(ctx context.Context, filter storage.MealFilter) ([]*models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Skip > 0 {
		opts = opts.SetSkip(filter.Skip)
	}
	if filter.Limit > 0 {
		opts = opts.SetLimit(filter.Limit)
	}
	return findMany[models.Meal](ctx, s.col(ColMeals), mealFilterDoc(filter), opts)
}

func (s *Store) CountMeals(ctx context.Context, filter storage.MealFilter) (int64, error) {
	n, err := s.col(ColMeals).CountDocuments(ctx, mealFilterDoc(filter))
	if err != nil {
		return 0, wrapError(err)
	}
	return n, nil
}

func (s *Store) UpdateMeal(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	return updateFields(ctx, s.col(ColMeals), byID(id), setFromMap(fields))
}

func (s *Store) DeleteMeal(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, s.col(ColMeals), id)
}
