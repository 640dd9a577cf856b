package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-chef-bazaar-api/handlers"
	"local-chef-bazaar-api/middleware"
	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/payments"
	"local-chef-bazaar-api/routes"
	"local-chef-bazaar-api/storage/memstore"
	"local-chef-bazaar-api/workflow"
)

type fakeGateway struct {
	created  []payments.SessionParams
	sessions map[string]*payments.RetrievedSession
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, p payments.SessionParams) (*payments.Session, error) {
	g.created = append(g.created, p)
	return &payments.Session{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *fakeGateway) RetrieveCheckoutSession(_ context.Context, sessionID string) (*payments.RetrievedSession, error) {
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

type env struct {
	router  *gin.Engine
	store   *memstore.Store
	auth    *middleware.Auth
	gateway *fakeGateway
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	auth := middleware.NewAuth([]byte("test-secret"), store)
	gateway := &fakeGateway{sessions: map[string]*payments.RetrievedSession{}}
	h := handlers.New(store, auth,
		workflow.New(store),
		payments.New(store, gateway, "http://localhost:5173"))

	r := gin.New()
	routes.SetupRoutes(r, h, auth)
	return &env{router: r, store: store, auth: auth, gateway: gateway}
}

func (e *env) seedUser(t *testing.T, email string, role models.UserRole) {
	t.Helper()
	require.NoError(t, e.store.CreateUser(context.Background(), &models.User{
		Name:      "Seeded",
		Email:     email,
		Role:      role,
		Status:    "active",
		CreatedAt: time.Now(),
	}))
}

func (e *env) cookieFor(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	token, err := e.auth.GenerateToken(email, role)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateUserFirstSignIn(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/users", gin.H{"name": "Ayesha", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	user, err := e.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role, "role defaults to user")

	// Every later sign-in answers with a plain message.
	w = e.do(t, http.MethodPost, "/users", gin.H{"name": "Ayesha", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user exists", decode(t, w)["message"])
}

func TestIssueTokenSetsCookie(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/jwt", gin.H{"email": "a@x.com", "role": "user"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRoleRequestLifecycle(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "admin@x.com", models.RoleAdmin)
	adminCookie := e.cookieFor(t, "admin@x.com", models.RoleAdmin)

	// First sign-in, then a chef request.
	w := e.do(t, http.MethodPost, "/users", gin.H{"name": "Ayesha", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	userCookie := e.cookieFor(t, "a@x.com", models.RoleUser)
	w = e.do(t, http.MethodPost, "/role-requests",
		gin.H{"userName": "Ayesha", "userEmail": "a@x.com", "requestType": "chef"}, userCookie)
	require.Equal(t, http.StatusCreated, w.Code)

	// Admin sees exactly one pending entry.
	w = e.do(t, http.MethodGet, "/role-requests", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.EqualValues(t, 1, body["count"])
	entry := body["requests"].([]any)[0].(map[string]any)
	assert.Equal(t, "pending", entry["status"])

	// A second submission while pending conflicts and adds nothing.
	w = e.do(t, http.MethodPost, "/role-requests",
		gin.H{"userName": "Ayesha", "userEmail": "a@x.com", "requestType": "chef"}, userCookie)
	require.Equal(t, http.StatusConflict, w.Code)

	// Approve.
	w = e.do(t, http.MethodPatch, "/role-requests",
		gin.H{"userEmail": "a@x.com", "requestType": "chef", "action": "approve"}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := e.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChef, user.Role)
	assert.Regexp(t, regexp.MustCompile(`^chef-\d{4}$`), user.ChefID)

	w = e.do(t, http.MethodGet, "/role-requests?email=a@x.com", nil, adminCookie)
	entry = decode(t, w)["requests"].([]any)[0].(map[string]any)
	assert.Equal(t, "approved", entry["status"])
}

func TestDecideUnknownActionIsBadRequest(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "admin@x.com", models.RoleAdmin)
	e.seedUser(t, "a@x.com", models.RoleUser)
	adminCookie := e.cookieFor(t, "admin@x.com", models.RoleAdmin)
	userCookie := e.cookieFor(t, "a@x.com", models.RoleUser)

	w := e.do(t, http.MethodPost, "/role-requests",
		gin.H{"userName": "Ayesha", "userEmail": "a@x.com", "requestType": "chef"}, userCookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPatch, "/role-requests",
		gin.H{"userEmail": "a@x.com", "requestType": "chef", "action": "escalate"}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGate(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "plain@x.com", models.RoleUser)

	w := e.do(t, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token role claims admin; the store knows better.
	staleCookie := e.cookieFor(t, "plain@x.com", models.RoleAdmin)
	w = e.do(t, http.MethodGet, "/users", nil, staleCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFavoriteDuplicateRejected(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "a@x.com", models.RoleUser)
	cookie := e.cookieFor(t, "a@x.com", models.RoleUser)

	fav := gin.H{"userEmail": "a@x.com", "foodId": "meal-1", "mealTitle": "Beef Biryani"}
	w := e.do(t, http.MethodPost, "/favorites", fav, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/favorites", fav, cookie)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = e.do(t, http.MethodGet, "/favorites?email=a@x.com", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"], "duplicate must not create a second record")
}

func TestMealLifecycle(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "chef@x.com", models.RoleChef)
	cookie := e.cookieFor(t, "chef@x.com", models.RoleChef)

	w := e.do(t, http.MethodPost, "/meals", gin.H{
		"chefEmail": "chef@x.com", "title": "Beef Biryani", "price": 25.0, "featured": true,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	mealID := decode(t, w)["meal"].(map[string]any)["_id"].(string)

	// Listing is public.
	w = e.do(t, http.MethodGet, "/meals?featured=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	// Partial update leaves other fields alone.
	w = e.do(t, http.MethodPatch, "/meals/"+mealID, gin.H{"price": 27.5}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/meals/"+mealID, nil, "")
	meal := decode(t, w)["meal"].(map[string]any)
	assert.EqualValues(t, 27.5, meal["price"])
	assert.Equal(t, "Beef Biryani", meal["title"])

	w = e.do(t, http.MethodDelete, "/meals/"+mealID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodGet, "/meals/"+mealID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderCheckoutAndConfirm(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "a@x.com", models.RoleUser)
	cookie := e.cookieFor(t, "a@x.com", models.RoleUser)

	// Order with totalPrice 25.
	w := e.do(t, http.MethodPost, "/orders", gin.H{
		"userEmail": "a@x.com", "chefId": "chef-1234",
		"mealTitle": "Beef Biryani", "totalPrice": 25,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode(t, w)["order"].(map[string]any)
	orderID := order["_id"].(string)
	assert.Equal(t, "unpaid", order["paymentStatus"])

	// Checkout session carries 2500 minor units.
	w = e.do(t, http.MethodPost, "/orders/payment-checkout-session", gin.H{
		"orderId": orderID, "mealTitle": "Beef Biryani",
		"email": "a@x.com", "totalPrice": 25,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://checkout.example/cs_test_1", decode(t, w)["url"])
	require.Len(t, e.gateway.created, 1)
	assert.EqualValues(t, 2500, e.gateway.created[0].AmountCents)
	assert.Equal(t, orderID, e.gateway.created[0].Metadata["orderId"])

	// Confirm.
	e.gateway.sessions["sess_1"] = &payments.RetrievedSession{
		PaymentIntentID: "pi_123",
		Metadata:        map[string]string{"orderId": orderID},
	}
	w = e.do(t, http.MethodPatch, "/payment-success?session_id=sess_1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	assert.Equal(t, "pi_123", first["transactionId"])
	assert.Regexp(t, regexp.MustCompile(`^MEAL-\d{8}-[A-Z0-9]{6}$`), first["trackingId"])

	// Replay returns the identical pair and writes nothing.
	w = e.do(t, http.MethodPatch, "/payment-success?session_id=sess_1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode(t, w)
	assert.Equal(t, first["transactionId"], second["transactionId"])
	assert.Equal(t, first["trackingId"], second["trackingId"])
	assert.Equal(t, true, second["alreadyPaid"])

	w = e.do(t, http.MethodGet, "/orders/"+orderID, nil, cookie)
	stored := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, "paid", stored["paymentStatus"])
	assert.Equal(t, first["trackingId"], stored["trackingId"])
}

func TestConfirmUnknownSessionFails(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "a@x.com", models.RoleUser)
	cookie := e.cookieFor(t, "a@x.com", models.RoleUser)

	w := e.do(t, http.MethodPatch, "/payment-success?session_id=sess_missing", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateOrderStatusStage(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "a@x.com", models.RoleUser)
	cookie := e.cookieFor(t, "a@x.com", models.RoleUser)

	w := e.do(t, http.MethodPost, "/orders", gin.H{
		"userEmail": "a@x.com", "chefId": "chef-1234",
		"mealTitle": "Beef Biryani", "totalPrice": 25,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode(t, w)["order"].(map[string]any)["_id"].(string)

	w = e.do(t, http.MethodPatch, "/orders/"+orderID, gin.H{"orderStatus": "preparing"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/orders/"+orderID, nil, cookie)
	assert.Equal(t, "preparing", decode(t, w)["order"].(map[string]any)["orderStatus"])
}
