package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SyncUser syncs Firebase user data to PostgreSQL. Called after Firebase
// authentication to make sure the user row exists; accepts an optional
// body with name and theme.
func (h *Handler) SyncUser(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	email := c.GetString("email")

	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body struct {
		Email string `json:"email,omitempty"`
		Name  string `json:"name,omitempty"`
		Theme string `json:"theme_preference,omitempty"`
	}

	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
			return
		}
	}

	if body.Email != "" {
		email = body.Email
	}

	var theme domain.Theme
	if body.Theme != "" {
		parsed, err := domain.ParseTheme(body.Theme)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid theme"})
			return
		}
		theme = parsed
	}

	user, err := h.authService.SyncUser(&domain.CreateUserRequest{
		FirebaseUID: firebaseUID,
		Email:       email,
		Name:        body.Name,
		Theme:       theme,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user", "details": err.Error()})
		return
	}

	_ = h.authService.RecordLogin(firebaseUID)

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the user's own profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req struct {
		Name  *string `json:"name,omitempty"`
		Theme *string `json:"theme_preference,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := &domain.UpdateUserRequest{Name: req.Name}
	if req.Theme != nil {
		theme, err := domain.ParseTheme(*req.Theme)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid theme"})
			return
		}
		update.Theme = &theme
	}

	user, err := h.authService.UpdateProfile(firebaseUID, update)
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetTheme returns the stored theme preference. Always 200; unknown users
// get "system" so the dashboard can render without a round-trip failure.
func (h *Handler) GetTheme(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusOK, gin.H{"theme": domain.ThemeSystem})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": h.authService.GetTheme(firebaseUID)})
}

// UpdateTheme persists the caller's theme preference
func (h *Handler) UpdateTheme(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		// The client keeps the theme in local storage anyway.
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "not authenticated, theme saved locally only"})
		return
	}

	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}

	theme, err := domain.ParseTheme(req.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid theme"})
		return
	}

	if err := h.authService.SetTheme(firebaseUID, theme); err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update theme preference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "theme": theme})
}
