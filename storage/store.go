// Package storage defines the persistence boundary of the application.
//
// The interface is implemented by mongostore (production) and memstore
// (tests). All single-document addressing uses the store's native
// ObjectID type; handlers parse hex id strings at the HTTP boundary.
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"local-chef-bazaar-api/models"
)

// MealFilter narrows meal listings. Zero values mean "no constraint";
// Limit == 0 disables pagination.
type MealFilter struct {
	ChefEmail string
	Featured  *bool
	Skip      int64
	Limit     int64
}

// OrderFilter narrows order listings by customer email or chef id.
type OrderFilter struct {
	UserEmail string
	ChefID    string
}

// ReviewFilter narrows review listings by meal or author.
type ReviewFilter struct {
	FoodID    string
	UserEmail string
}

// Store is the persistence gateway. Implementations return ErrNotFound
// and ErrDuplicate; every other error is an upstream failure.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserStatus(ctx context.Context, email, status string) error
	// SetUserRole assigns a role and, when chefID is non-empty, the chef
	// identifier in the same write.
	SetUserRole(ctx context.Context, email string, role models.UserRole, chefID string) error
	SetUserRequestMarker(ctx context.Context, email, requestType, marker string) error

	// Role requests
	CreateRoleRequest(ctx context.Context, req *models.RoleRequest) error
	// ListRoleRequests returns requests newest-first; email == "" lists all.
	ListRoleRequests(ctx context.Context, email string) ([]*models.RoleRequest, error)
	// LatestRoleRequest returns the most recent request for the pair.
	LatestRoleRequest(ctx context.Context, email string, requestType models.UserRole) (*models.RoleRequest, error)
	CountPendingRoleRequests(ctx context.Context, email string, requestType models.UserRole) (int64, error)
	SetRoleRequestStatus(ctx context.Context, id bson.ObjectID, status models.RequestStatus) error

	// Meals
	CreateMeal(ctx context.Context, meal *models.Meal) error
	GetMeal(ctx context.Context, id bson.ObjectID) (*models.Meal, error)
	ListMeals(ctx context.Context, filter MealFilter) ([]*models.Meal, error)
	CountMeals(ctx context.Context, filter MealFilter) (int64, error)
	UpdateMeal(ctx context.Context, id bson.ObjectID, fields map[string]any) error
	DeleteMeal(ctx context.Context, id bson.ObjectID) error

	// Orders
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error)
	// GetOrderByTransactionID is the payment-confirmation dedupe lookup.
	GetOrderByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	SetOrderStatus(ctx context.Context, id bson.ObjectID, stage string) error
	// MarkOrderPaid applies the single paid-state write: paymentStatus,
	// transactionId and trackingId together.
	MarkOrderPaid(ctx context.Context, id bson.ObjectID, transactionID, trackingID string) error

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.Review, error)
	UpdateReview(ctx context.Context, id bson.ObjectID, fields map[string]any) error
	DeleteReview(ctx context.Context, id bson.ObjectID) error

	// Favorites
	CreateFavorite(ctx context.Context, fav *models.Favorite) error
	ListFavorites(ctx context.Context, email string) ([]*models.Favorite, error)
	DeleteFavorite(ctx context.Context, id bson.ObjectID) error
}
