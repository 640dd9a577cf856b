package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

func TestUserEmailUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@x.com", Role: models.RoleUser}))
	err := s.CreateUser(ctx, &models.User{Email: "a@x.com", Role: models.RoleUser})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestFavoritePairUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateFavorite(ctx, &models.Favorite{UserEmail: "a@x.com", FoodID: "m1"}))
	err := s.CreateFavorite(ctx, &models.Favorite{UserEmail: "a@x.com", FoodID: "m1"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	// Same meal for another user is fine.
	require.NoError(t, s.CreateFavorite(ctx, &models.Favorite{UserEmail: "b@x.com", FoodID: "m1"}))
}

func TestOrderTransactionLookup(t *testing.T) {
	s := New()
	ctx := context.Background()
	order := &models.Order{UserEmail: "a@x.com", PaymentStatus: models.PaymentUnpaid}
	require.NoError(t, s.CreateOrder(ctx, order))

	_, err := s.GetOrderByTransactionID(ctx, "pi_123")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.MarkOrderPaid(ctx, order.ID, "pi_123", "MEAL-20260830-ABC123"))
	found, err := s.GetOrderByTransactionID(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, models.PaymentPaid, found.PaymentStatus)
}

func TestMealPagination(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateMeal(ctx, &models.Meal{
			ChefEmail: "chef@x.com",
			Title:     "Meal",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.ListMeals(ctx, storage.MealFilter{Limit: 2, Skip: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	total, err := s.CountMeals(ctx, storage.MealFilter{ChefEmail: "chef@x.com"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	// Newest first.
	all, err := s.ListMeals(ctx, storage.MealFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.True(t, all[0].CreatedAt.After(all[4].CreatedAt))
}
