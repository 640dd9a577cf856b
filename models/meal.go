package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Meal is a listing owned by a chef, addressed by its document id.
type Meal struct {
	ID          bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ChefEmail   string        `json:"chefEmail" bson:"chefEmail"`
	ChefName    string        `json:"chefName,omitempty" bson:"chefName,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64       `json:"price" bson:"price"`
	Image       string        `json:"image,omitempty" bson:"image,omitempty"`
	Category    string        `json:"category,omitempty" bson:"category,omitempty"`
	Featured    bool          `json:"featured" bson:"featured"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}
