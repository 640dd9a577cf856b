package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PaymentStatus is the only strict state on an order: unpaid → paid,
// with paid terminal.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// OrderStatusPending is the initial fulfillment stage. The fulfillment
// stage itself is free-form (pending, preparing, delivered, ...) and is
// advanced by chefs through plain PATCH updates.
const OrderStatusPending = "pending"

// Order ties a customer to a chef's meal. TransactionID and TrackingID
// are written exactly once, when the payment is confirmed; after that
// the order is immutable with respect to payment fields.
type Order struct {
	ID            bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserEmail     string        `json:"userEmail" bson:"userEmail"`
	ChefID        string        `json:"chefId" bson:"chefId"`
	MealTitle     string        `json:"mealTitle" bson:"mealTitle"`
	TotalPrice    float64       `json:"totalPrice" bson:"totalPrice"`
	Quantity      int           `json:"quantity" bson:"quantity"`
	Address       string        `json:"address,omitempty" bson:"address,omitempty"`
	OrderStatus   string        `json:"orderStatus" bson:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	TransactionID string        `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	TrackingID    string        `json:"trackingId,omitempty" bson:"trackingId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
}
