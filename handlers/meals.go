package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

type CreateMealRequest struct {
	ChefEmail   string  `json:"chefEmail" binding:"required,email"`
	ChefName    string  `json:"chefName"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
}

// CreateMeal lists a new meal for a chef
func (h *Handler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	meal := &models.Meal{
		ChefEmail:   req.ChefEmail,
		ChefName:    req.ChefName,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Featured:    req.Featured,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateMeal(c.Request.Context(), meal); err != nil {
		serverError(c, "failed to create meal", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "meal": meal})
}

// ListMeals supports chefEmail/featured filters and page/limit
// pagination, newest first.
func (h *Handler) ListMeals(c *gin.Context) {
	filter := storage.MealFilter{ChefEmail: c.Query("chefEmail")}

	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid limit"})
			return
		}
		filter.Limit = limit
		if p := c.Query("page"); p != "" {
			page, err := strconv.ParseInt(p, 10, 64)
			if err != nil || page < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid page"})
				return
			}
			filter.Skip = (page - 1) * limit
		}
	}

	meals, err := h.store.ListMeals(c.Request.Context(), filter)
	if err != nil {
		serverError(c, "failed to fetch meals", err)
		return
	}
	total, err := h.store.CountMeals(c.Request.Context(), filter)
	if err != nil {
		serverError(c, "failed to count meals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": total, "count": len(meals), "meals": meals})
}

// GetMeal returns one meal by id
func (h *Handler) GetMeal(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	meal, err := h.store.GetMeal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		serverError(c, "failed to fetch meal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meal": meal})
}

type UpdateMealRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Featured    *bool    `json:"featured"`
}

// UpdateMeal applies a partial field update; absent fields are untouched
func (h *Handler) UpdateMeal(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no fields to update"})
		return
	}

	if err := h.store.UpdateMeal(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		serverError(c, "failed to update meal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal updated"})
}

// DeleteMeal removes a meal by id
func (h *Handler) DeleteMeal(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	if err := h.store.DeleteMeal(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Meal not found"})
			return
		}
		serverError(c, "failed to delete meal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal deleted"})
}
