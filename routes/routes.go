package routes

import (
	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/handlers"
	"local-chef-bazaar-api/middleware"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.Auth) {
	// ── Public routes ──────────────────────────────────────────────
	{
		// Credential
		r.POST("/jwt", h.IssueToken)
		r.POST("/logout", h.Logout)

		// First sign-in + role lookup
		r.POST("/users", h.CreateUser)
		r.GET("/users/:email/role", h.GetUserRole)

		// Browsing needs no auth
		r.GET("/meals", h.ListMeals)
		r.GET("/meals/:id", h.GetMeal)
		r.GET("/reviews", h.ListReviews)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/")
	authed.Use(auth.AuthRequired())
	{
		authed.GET("/users/:email", h.GetUser)

		authed.POST("/role-requests", h.SubmitRoleRequest)

		authed.POST("/meals", h.CreateMeal)
		authed.PATCH("/meals/:id", h.UpdateMeal)
		authed.DELETE("/meals/:id", h.DeleteMeal)

		authed.POST("/reviews", h.CreateReview)
		authed.PATCH("/reviews/:id", h.UpdateReview)
		authed.DELETE("/reviews/:id", h.DeleteReview)

		authed.GET("/favorites", h.ListFavorites)
		authed.POST("/favorites", h.CreateFavorite)
		authed.DELETE("/favorites/:id", h.DeleteFavorite)

		authed.GET("/orders", h.ListOrders)
		authed.GET("/orders/:id", h.GetOrder)
		authed.POST("/orders", h.CreateOrder)
		authed.PATCH("/orders/:id", h.UpdateOrderStatus)

		authed.POST("/orders/payment-checkout-session", h.CreateCheckoutSession)
		authed.PATCH("/payment-success", h.PaymentSuccess)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(auth.AuthRequired(), auth.AdminRequired())
	{
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:email", h.UpdateUserStatus)

		admin.GET("/role-requests", h.ListRoleRequests)
		admin.PATCH("/role-requests", h.DecideRoleRequest)
	}
}
