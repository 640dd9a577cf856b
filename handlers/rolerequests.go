package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"local-chef-bazaar-api/models"
	"local-chef-bazaar-api/storage"
	"local-chef-bazaar-api/workflow"
)

type SubmitRoleRequest struct {
	UserName    string          `json:"userName" binding:"required"`
	UserEmail   string          `json:"userEmail" binding:"required,email"`
	RequestType models.UserRole `json:"requestType" binding:"required,oneof=chef admin"`
}

// SubmitRoleRequest opens a role-upgrade request. A second submission
// while one is pending is a conflict.
func (h *Handler) SubmitRoleRequest(c *gin.Context) {
	var req SubmitRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	record, err := h.roles.Submit(c.Request.Context(), req.UserName, req.UserEmail, req.RequestType)
	if err != nil {
		if errors.Is(err, workflow.ErrPendingExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		serverError(c, "failed to submit role request", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "request": record})
}

// ListRoleRequests returns role requests newest-first — admin only.
// An email query narrows to one user.
func (h *Handler) ListRoleRequests(c *gin.Context) {
	requests, err := h.store.ListRoleRequests(c.Request.Context(), c.Query("email"))
	if err != nil {
		serverError(c, "failed to fetch role requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(requests), "requests": requests})
}

type DecideRoleRequest struct {
	UserEmail   string          `json:"userEmail" binding:"required,email"`
	RequestType models.UserRole `json:"requestType" binding:"required,oneof=chef admin"`
	Action      string          `json:"action" binding:"required"`
}

// DecideRoleRequest resolves the most recent request for the pair —
// admin only.
func (h *Handler) DecideRoleRequest(c *gin.Context) {
	var req DecideRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	record, err := h.roles.Decide(c.Request.Context(), req.UserEmail, req.RequestType, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, workflow.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Role request not found"})
		default:
			serverError(c, "failed to decide role request", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "request": record})
}
