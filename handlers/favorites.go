package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

type CreateFavoriteRequest struct {
	UserEmail string  `json:"userEmail" binding:"required,email"`
	FoodID    string  `json:"foodId" binding:"required"`
	MealTitle string  `json:"mealTitle"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
}

// CreateFavorite bookmarks a meal. A (userEmail, foodId) pair can exist
// once; a duplicate is a conflict, not an overwrite.
func (h *Handler) CreateFavorite(c *gin.Context) {
	var req CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	fav := &models.Favorite{
		UserEmail: req.UserEmail,
		FoodID:    req.FoodID,
		MealTitle: req.MealTitle,
		Image:     req.Image,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateFavorite(c.Request.Context(), fav); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Already in favorites"})
			return
		}
		serverError(c, "failed to add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "favorite": fav})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email query is required"})
		return
	}
	favorites, err := h.store.ListFavorites(c.Request.Context(), email)
	if err != nil {
		serverError(c, "failed to fetch favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(favorites), "favorites": favorites})
}

func (h *Handler) DeleteFavorite(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	if err := h.store.DeleteFavorite(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Favorite not found"})
			return
		}
		serverError(c, "failed to delete favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorite removed"})
}
