package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/payments"
	"local-chef-bazaar-api/storage"
)

type CreateOrderRequest struct {
	UserEmail  string  `json:"userEmail" binding:"required,email"`
	ChefID     string  `json:"chefId" binding:"required"`
	MealTitle  string  `json:"mealTitle" binding:"required"`
	TotalPrice float64 `json:"totalPrice" binding:"required,gt=0"`
	Quantity   int     `json:"quantity" binding:"omitempty,min=1"`
	Address    string  `json:"address"`
}

// CreateOrder inserts an order at the initial fulfillment stage, unpaid.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	order := &models.Order{
		UserEmail:     req.UserEmail,
		ChefID:        req.ChefID,
		MealTitle:     req.MealTitle,
		TotalPrice:    req.TotalPrice,
		Quantity:      req.Quantity,
		Address:       req.Address,
		OrderStatus:   models.OrderStatusPending,
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     time.Now(),
	}
	if err := h.store.CreateOrder(c.Request.Context(), order); err != nil {
		serverError(c, "failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// ListOrders filters by customer email or chef id, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context(), storage.OrderFilter{
		UserEmail: c.Query("email"),
		ChefID:    c.Query("chefId"),
	})
	if err != nil {
		serverError(c, "failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
}

// GetOrder returns one order by id
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	order, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		serverError(c, "failed to fetch order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

// UpdateOrderStatus advances the free-form fulfillment stage
// (pending, preparing, delivered, ...).
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.store.SetOrderStatus(c.Request.Context(), id, req.OrderStatus); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		serverError(c, "failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}

type CheckoutSessionRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	MealTitle string `json:"mealTitle" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	// TotalPrice stays a json.Number so the engine's integer parse owns
	// the conversion to minor units.
	TotalPrice json.Number `json:"totalPrice" binding:"required"`
}

// CreateCheckoutSession asks the payment processor for a hosted checkout
// page and returns its redirect URL.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	url, err := h.payments.CreateCheckoutSession(c.Request.Context(), payments.CheckoutInput{
		OrderID:       req.OrderID,
		MealTitle:     req.MealTitle,
		CustomerEmail: req.Email,
		TotalPrice:    req.TotalPrice.String(),
	})
	if err != nil {
		serverError(c, "failed to create checkout session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// PaymentSuccess confirms a completed checkout session. Safe to call
// any number of times for the same session.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "session_id query is required"})
		return
	}

	result, err := h.payments.ConfirmPayment(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		serverError(c, "failed to confirm payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transactionId": result.TransactionID,
		"trackingId":    result.TrackingID,
		"alreadyPaid":   result.AlreadyPaid,
	})
}
