// Package workflow implements the role-upgrade request lifecycle.
//
// Per (userEmail, requestType) the request moves through
// none → pending → {approved, rejected}, with the terminal states final.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

// Decision actions accepted by Decide
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

var (
	// ErrPendingExists rejects a second submission while one is open.
	ErrPendingExists = errors.New("a pending request of this type already exists")

	// ErrUnknownAction rejects any decision other than approve/reject.
	ErrUnknownAction = errors.New("unknown action: must be 'approve' or 'reject'")

	// ErrAlreadyDecided rejects a second decision on a terminal request.
	ErrAlreadyDecided = errors.New("request already decided")
)

// validTransitions is the authoritative state machine definition
var validTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestPending: {models.RequestApproved, models.RequestRejected},
}

// canTransition checks whether a request may move from one status to another
func canTransition(from, to models.RequestStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid transition %s -> %s: %w", from, to, ErrAlreadyDecided)
}

// Engine runs the role-request workflow against the persistence gateway.
type Engine struct {
	store storage.Store
}

func New(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Submit opens a pending role request for the user and stamps the user's
// per-type request marker. Fails with ErrPendingExists while an earlier
// request for the same (userEmail, requestType) is still pending.
//
// The request insert and the user marker update are two writes with no
// transaction between them; a crash in between leaves the marker behind
// the request record. Best-effort, same as the rest of the workflow.
func (e *Engine) Submit(ctx context.Context, userName, userEmail string, requestType models.UserRole) (*models.RoleRequest, error) {
	n, err := e.store.CountPendingRoleRequests(ctx, userEmail, requestType)
	if err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}
	if n > 0 {
		return nil, ErrPendingExists
	}

	req := &models.RoleRequest{
		UserName:    userName,
		UserEmail:   userEmail,
		RequestType: requestType,
		Status:      models.RequestPending,
		CreatedAt:   time.Now(),
	}
	if err := e.store.CreateRoleRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create role request: %w", err)
	}

	if err := e.store.SetUserRequestMarker(ctx, userEmail, string(requestType), string(models.RequestPending)); err != nil {
		return nil, fmt.Errorf("stamp user request marker: %w", err)
	}
	return req, nil
}

// Decide resolves the most recent request for (userEmail, requestType).
//
// approve: the request becomes approved and the user's role becomes the
// requested type. A chef promotion also assigns a chef identifier of the
// form "chef-" + a 4-digit code; the code is not checked against existing
// chefs, so a collision in the 9000-value space is possible (accepted
// product limitation). An admin promotion re-sets the role to admin
// explicitly even though the generic assignment already did — kept as a
// no-op safety set.
//
// reject: the request becomes rejected and the user's role is untouched.
//
// The request write and the user write are not transactional; a crash
// between them leaves the pair inconsistent until Decide is re-invoked.
func (e *Engine) Decide(ctx context.Context, userEmail string, requestType models.UserRole, action string) (*models.RoleRequest, error) {
	var target models.RequestStatus
	switch action {
	case ActionApprove:
		target = models.RequestApproved
	case ActionReject:
		target = models.RequestRejected
	default:
		return nil, ErrUnknownAction
	}

	req, err := e.store.LatestRoleRequest(ctx, userEmail, requestType)
	if err != nil {
		return nil, fmt.Errorf("load role request: %w", err)
	}
	if err := canTransition(req.Status, target); err != nil {
		return nil, err
	}

	if err := e.store.SetRoleRequestStatus(ctx, req.ID, target); err != nil {
		return nil, fmt.Errorf("update role request: %w", err)
	}
	req.Status = target

	if target == models.RequestApproved {
		chefID := ""
		if requestType == models.RoleChef {
			chefID = newChefID()
		}
		if err := e.store.SetUserRole(ctx, userEmail, requestType, chefID); err != nil {
			return nil, fmt.Errorf("assign role: %w", err)
		}
		if requestType == models.RoleAdmin {
			if err := e.store.SetUserRole(ctx, userEmail, models.RoleAdmin, ""); err != nil {
				return nil, fmt.Errorf("assign admin role: %w", err)
			}
		}
	}

	if err := e.store.SetUserRequestMarker(ctx, userEmail, string(requestType), string(target)); err != nil {
		return nil, fmt.Errorf("stamp user request marker: %w", err)
	}
	return req, nil
}

// newChefID draws a code uniformly from chef-1000 .. chef-9999.
func newChefID() string {
	return fmt.Sprintf("chef-%d", 1000+rand.IntN(9000))
}
