// Package memstore is an in-memory storage.Store used by tests.
//
// It mirrors mongostore semantics: sentinel errors for missing and
// duplicate documents, newest-first listings, and the unique constraints
// on users.email and favorites (userEmail, foodId).
package memstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]*models.User // keyed by email
	roleRequests map[bson.ObjectID]*models.RoleRequest
	meals        map[bson.ObjectID]*models.Meal
	orders       map[bson.ObjectID]*models.Order
	reviews      map[bson.ObjectID]*models.Review
	favorites    map[bson.ObjectID]*models.Favorite
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:        map[string]*models.User{},
		roleRequests: map[bson.ObjectID]*models.RoleRequest{},
		meals:        map[bson.ObjectID]*models.Meal{},
		orders:       map[bson.ObjectID]*models.Order{},
		reviews:      map[bson.ObjectID]*models.Review{},
		favorites:    map[bson.ObjectID]*models.Favorite{},
	}
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return storage.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	cp := *user
	s.users[user.Email] = &cp
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.User{}
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateUserStatus(_ context.Context, email, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return storage.ErrNotFound
	}
	u.Status = status
	return nil
}

func (s *Store) SetUserRole(_ context.Context, email string, role models.UserRole, chefID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return storage.ErrNotFound
	}
	u.Role = role
	if chefID != "" {
		u.ChefID = chefID
	}
	return nil
}

func (s *Store) SetUserRequestMarker(_ context.Context, email, requestType, marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return storage.ErrNotFound
	}
	if u.Requests == nil {
		u.Requests = map[string]string{}
	}
	u.Requests[requestType] = marker
	return nil
}

// Role requests

func (s *Store) CreateRoleRequest(_ context.Context, req *models.RoleRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID.IsZero() {
		req.ID = bson.NewObjectID()
	}
	cp := *req
	s.roleRequests[req.ID] = &cp
	return nil
}

func (s *Store) ListRoleRequests(_ context.Context, email string) ([]*models.RoleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.RoleRequest{}
	for _, r := range s.roleRequests {
		if email != "" && r.UserEmail != email {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) LatestRoleRequest(_ context.Context, email string, requestType models.UserRole) (*models.RoleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.RoleRequest
	for _, r := range s.roleRequests {
		if r.UserEmail != email || r.RequestType != requestType {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *Store) CountPendingRoleRequests(_ context.Context, email string, requestType models.UserRole) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.roleRequests {
		if r.UserEmail == email && r.RequestType == requestType && r.Status == models.RequestPending {
			n++
		}
	}
	return n, nil
}

func (s *Store) SetRoleRequestStatus(_ context.Context, id bson.ObjectID, status models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.roleRequests[id]
	if !ok {
		return storage.ErrNotFound
	}
	r.Status = status
	return nil
}

// Meals

func (s *Store) CreateMeal(_ context.Context, meal *models.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meal.ID.IsZero() {
		meal.ID = bson.NewObjectID()
	}
	cp := *meal
	s.meals[meal.ID] = &cp
	return nil
}

func (s *Store) GetMeal(_ context.Context, id bson.ObjectID) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) matchMeals(filter storage.MealFilter) []*models.Meal {
	out := []*models.Meal{}
	for _, m := range s.meals {
		if filter.ChefEmail != "" && m.ChefEmail != filter.ChefEmail {
			continue
		}
		if filter.Featured != nil && m.Featured != *filter.Featured {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) ListMeals(_ context.Context, filter storage.MealFilter) ([]*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.matchMeals(filter)
	if filter.Skip > 0 {
		if filter.Skip >= int64(len(out)) {
			return []*models.Meal{}, nil
		}
		out = out[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < int64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) CountMeals(_ context.Context, filter storage.MealFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matchMeals(filter))), nil
}

func (s *Store) UpdateMeal(_ context.Context, id bson.ObjectID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meals[id]
	if !ok {
		return storage.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			m.Title, _ = v.(string)
		case "description":
			m.Description, _ = v.(string)
		case "price":
			m.Price = toFloat(v)
		case "image":
			m.Image, _ = v.(string)
		case "category":
			m.Category, _ = v.(string)
		case "featured":
			m.Featured, _ = v.(bool)
		}
	}
	return nil
}

func (s *Store) DeleteMeal(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meals[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.meals, id)
	return nil
}

// Orders

func (s *Store) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *Store) GetOrder(_ context.Context, id bson.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *Store) ListOrders(_ context.Context, filter storage.OrderFilter) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Order{}
	for _, o := range s.orders {
		if filter.UserEmail != "" && o.UserEmail != filter.UserEmail {
			continue
		}
		if filter.ChefID != "" && o.ChefID != filter.ChefID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetOrderByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.TransactionID == transactionID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) SetOrderStatus(_ context.Context, id bson.ObjectID, stage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	o.OrderStatus = stage
	return nil
}

func (s *Store) MarkOrderPaid(_ context.Context, id bson.ObjectID, transactionID, trackingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	o.PaymentStatus = models.PaymentPaid
	o.TransactionID = transactionID
	o.TrackingID = trackingID
	return nil
}

// Reviews

func (s *Store) CreateReview(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = bson.NewObjectID()
	}
	cp := *review
	s.reviews[review.ID] = &cp
	return nil
}

func (s *Store) ListReviews(_ context.Context, filter storage.ReviewFilter) ([]*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Review{}
	for _, r := range s.reviews {
		if filter.FoodID != "" && r.FoodID != filter.FoodID {
			continue
		}
		if filter.UserEmail != "" && r.UserEmail != filter.UserEmail {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateReview(_ context.Context, id bson.ObjectID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return storage.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "rating":
			r.Rating = int(toFloat(v))
		case "comment":
			r.Comment, _ = v.(string)
		}
	}
	return nil
}

func (s *Store) DeleteReview(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

// Favorites

func (s *Store) CreateFavorite(_ context.Context, fav *models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.UserEmail == fav.UserEmail && f.FoodID == fav.FoodID {
			return storage.ErrDuplicate
		}
	}
	if fav.ID.IsZero() {
		fav.ID = bson.NewObjectID()
	}
	cp := *fav
	s.favorites[fav.ID] = &cp
	return nil
}

func (s *Store) ListFavorites(_ context.Context, email string) ([]*models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Favorite{}
	for _, f := range s.favorites {
		if f.UserEmail != email {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteFavorite(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.favorites, id)
	return nil
}

// toFloat accepts the numeric types a decoded JSON field map can carry.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
