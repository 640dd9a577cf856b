package workflow

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage/memstore"
)

var chefIDPattern = regexp.MustCompile(`^chef-\d{4}$`)

func seedUser(t *testing.T, store *memstore.Store, email string) {
	t.Helper()
	err := store.CreateUser(context.Background(), &models.User{
		Name:      "Test User",
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	req, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, models.RoleChef, req.RequestType)
	assert.False(t, req.ID.IsZero())

	user, err := store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "pending", user.Requests["chef"])
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)

	_, err = engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	assert.ErrorIs(t, err, ErrPendingExists)

	requests, err := store.ListRoleRequests(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, requests, 1, "conflicting submit must not create a record")
}

func TestSubmitAllowsDifferentRequestType(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)
	_, err = engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleAdmin)
	require.NoError(t, err)
}

func TestSubmitAllowsResubmitAfterRejection(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)
	_, err = engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionReject)
	require.NoError(t, err)

	_, err = engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)
}

func TestApproveChefAssignsRoleAndChefID(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)

	req, err := engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)

	user, err := store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChef, user.Role)
	assert.Regexp(t, chefIDPattern, user.ChefID)
	assert.Equal(t, "approved", user.Requests["chef"])
}

func TestApproveAdminAssignsRole(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = engine.Decide(context.Background(), "a@x.com", models.RoleAdmin, ActionApprove)
	require.NoError(t, err)

	user, err := store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.ChefID, "admin promotion assigns no chef id")
}

func TestRejectLeavesRoleUntouched(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)

	req, err := engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, req.Status)

	user, err := store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.ChefID)
	assert.Equal(t, "rejected", user.Requests["chef"])
}

func TestDecideUnknownAction(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)

	_, err = engine.Decide(context.Background(), "a@x.com", models.RoleChef, "escalate")
	assert.ErrorIs(t, err, ErrUnknownAction)

	requests, err := store.ListRoleRequests(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, requests[0].Status, "unknown action must not change state")
}

func TestDecideTwiceIsConflict(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Submit(context.Background(), "Test User", "a@x.com", models.RoleChef)
	require.NoError(t, err)
	_, err = engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionApprove)
	require.NoError(t, err)

	_, err = engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionReject)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestDecideMissingRequest(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "a@x.com")
	engine := New(store)

	_, err := engine.Decide(context.Background(), "a@x.com", models.RoleChef, ActionApprove)
	assert.Error(t, err)
}

func TestChefIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		if id := newChefID(); !chefIDPattern.MatchString(id) {
			t.Fatalf("chef id %q does not match chef-\\d{4}", id)
		}
	}
}
