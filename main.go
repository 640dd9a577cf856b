package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"local-chef-bazaar-api/config"
	"local-chef-bazaar-api/handlers"
	"local-chef-bazaar-api/middleware"
	"local-chef-bazaar-api/payments"
	"local-chef-bazaar-api/routes"
	"local-chef-bazaar-api/storage/mongostore"
	"local-chef-bazaar-api/workflow"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	// One store for the process lifetime
	store, err := mongostore.NewStore(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("✅ Database connected")

	auth := middleware.NewAuth(cfg.JWTSecret, store)
	roleEngine := workflow.New(store)
	payEngine := payments.New(store, payments.NewStripeGateway(cfg.StripeSecretKey), cfg.ClientOrigin)
	h := handlers.New(store, auth, roleEngine, payEngine)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS for the frontend; credentialed because the JWT rides a cookie
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.ClientOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Local Chef Bazaar API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍲 Welcome to the Local Chef Bazaar API",
			"health":  "/health",
			"roles":   []string{"user", "chef", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h, auth)

	// Start server
	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
