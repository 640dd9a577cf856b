package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleChef  UserRole = "chef"
	RoleAdmin UserRole = "admin"
)

// User is created on first sign-in with role "user". Role is only ever
// changed through an approved role request; ChefID exists only once the
// user has been promoted to chef.
type User struct {
	ID       bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name     string        `json:"name" bson:"name"`
	Email    string        `json:"email" bson:"email"`
	PhotoURL string        `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role     UserRole      `json:"role" bson:"role"`
	Status   string        `json:"status,omitempty" bson:"status,omitempty"`
	// Requests maps a request type ("chef", "admin") to the state of the
	// user's latest role request for that type.
	Requests  map[string]string `json:"requests,omitempty" bson:"requests,omitempty"`
	ChefID    string            `json:"chefId,omitempty" bson:"chefId,omitempty"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
}
