package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUser        = "current_user"
)

// UserFirebaseUID extracts the Firebase UID set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CurrentUser returns the authenticated user loaded by WithUser,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// SetCurrentUser stores the user in the Gin context. Exposed for tests
// that exercise role-gated handlers without the full middleware chain.
func SetCurrentUser(c *gin.Context, u *domain.User) {
	c.Set(CtxUser, u)
	if u != nil {
		c.Set(CtxFirebaseUID, u.FirebaseUID)
	}
}
