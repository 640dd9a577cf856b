package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RequestStatus represents the lifecycle of a role request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// RoleRequest records a user asking to be upgraded to a new role.
// At most one pending request may exist per (userEmail, requestType);
// approved/rejected requests are kept forever as an audit trail.
type RoleRequest struct {
	ID          bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserName    string        `json:"userName" bson:"userName"`
	UserEmail   string        `json:"userEmail" bson:"userEmail"`
	RequestType UserRole      `json:"requestType" bson:"requestType"`
	Status      RequestStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}
