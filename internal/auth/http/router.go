package http

import (
	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sync", h.SyncUser)
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
	rg.GET("/theme", h.GetTheme)
	rg.PUT("/theme", h.UpdateTheme)
}

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireRole(domain.RequireRole(domain.RoleAdmin)))
	users.GET("", h.ListUsers)
	users.PUT("/:id/role", h.UpdateRole)
	users.DELETE("/:id", h.DeleteUser)
}
