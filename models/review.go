package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is authored by a user against a meal (FoodID).
type Review struct {
	ID        bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FoodID    string        `json:"foodId" bson:"foodId"`
	UserEmail string        `json:"userEmail" bson:"userEmail"`
	UserName  string        `json:"userName,omitempty" bson:"userName,omitempty"`
	Rating    int           `json:"rating" bson:"rating"`
	Comment   string        `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
