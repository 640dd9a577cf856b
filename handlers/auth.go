package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/middleware"
	"local-chef-bazaar-api/models"
)

type TokenRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Role  models.UserRole `json:"role" binding:"required,oneof=user chef admin"`
}

// IssueToken signs a credential for the given principal and sets it as
// an http-only cookie. Identity itself is established upstream; this
// endpoint only mints the session credential.
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	token, err := h.auth.GenerateToken(req.Email, req.Role)
	if err != nil {
		serverError(c, "failed to generate token", err)
		return
	}

	c.SetCookie(middleware.CookieName, token, int(middleware.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token issued"})
}

// Logout clears the credential cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
