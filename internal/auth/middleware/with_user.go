package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/auth/service"
)

// WithUser resolves the Firebase UID set by the auth middleware to a
// database user and stores it in the context for role gates and handlers.
// Users that authenticated with Firebase but have no row yet are created
// on the fly with the default role.
func WithUser(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := auth.UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := authService.EnsureUser(uid, c.GetString("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		auth.SetCurrentUser(c, user)
		c.Next()
	}
}

// RequireRole gates a route group on the permission model. Denial is a
// plain 403; HasPermission itself never errors.
func RequireRole(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if !user.HasPermission(perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
