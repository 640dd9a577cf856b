package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Favorite bookmarks a meal for a user. Unique on (userEmail, foodId);
// inserting a duplicate pair is rejected, never overwritten.
type Favorite struct {
	ID        bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserEmail string        `json:"userEmail" bson:"userEmail"`
	FoodID    string        `json:"foodId" bson:"foodId"`
	MealTitle string        `json:"mealTitle,omitempty" bson:"mealTitle,omitempty"`
	Image     string        `json:"image,omitempty" bson:"image,omitempty"`
	Price     float64       `json:"price,omitempty" bson:"price,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
