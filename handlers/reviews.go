package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

type CreateReviewRequest struct {
	FoodID    string `json:"foodId" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required,email"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	review := &models.Review{
		FoodID:    req.FoodID,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateReview(c.Request.Context(), review); err != nil {
		serverError(c, "failed to create review", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// ListReviews filters by foodId (meal page) or email (my reviews).
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.store.ListReviews(c.Request.Context(), storage.ReviewFilter{
		FoodID:    c.Query("foodId"),
		UserEmail: c.Query("email"),
	})
	if err != nil {
		serverError(c, "failed to fetch reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reviews), "reviews": reviews})
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	fields := map[string]any{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no fields to update"})
		return
	}

	if err := h.store.UpdateReview(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Review not found"})
			return
		}
		serverError(c, "failed to update review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review updated"})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	if err := h.store.DeleteReview(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Review not found"})
			return
		}
		serverError(c, "failed to delete review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
