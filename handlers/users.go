package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL"`
}

// CreateUser registers a user on first sign-in. An existing email is
// answered with a plain "user exists" message, not an error — the
// frontend calls this on every sign-in.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if _, err := h.store.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "user exists"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		serverError(c, "failed to look up user", err)
		return
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleUser,
		Status:    "active",
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// lost the race with a concurrent first sign-in
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "user exists"})
			return
		}
		serverError(c, "failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// ListUsers returns all users — admin only
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, "failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
}

// GetUser returns a single user by email
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.store.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		serverError(c, "failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetUserRole answers the frontend's role lookup after sign-in. Unknown
// emails default to the plain user role.
func (h *Handler) GetUserRole(c *gin.Context) {
	user, err := h.store.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "role": models.RoleUser})
			return
		}
		serverError(c, "failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": user.Role})
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus sets the free-form account status (active, suspended,
// ...) — admin only
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	err := h.store.UpdateUserStatus(c.Request.Context(), c.Param("email"), req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		serverError(c, "failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User status updated"})
}
