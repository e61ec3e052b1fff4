package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

// ListUsers returns every user for the admin management screen
func (h *Handler) ListUsers(c *gin.Context) {
	actor := auth.CurrentUser(c)

	users, err := h.authService.ListUsers(actor)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateRole changes a user's role
func (h *Handler) UpdateRole(c *gin.Context) {
	actor := auth.CurrentUser(c)
	targetID := c.Param("id")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.authService.ChangeRole(actor, targetID, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user
func (h *Handler) DeleteUser(c *gin.Context) {
	actor := auth.CurrentUser(c)
	targetID := c.Param("id")

	if err := h.authService.DeleteUser(actor, targetID); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
