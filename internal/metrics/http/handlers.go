package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListMetrics)
	rg.POST("", h.CreateMetric)
	rg.GET("/:id", h.GetMetric)
	rg.PUT("/:id", h.UpdateMetric)
	rg.DELETE("/:id", h.DeleteMetric)
}

// ListMetrics returns a customer's rows ordered by reporting period
func (h *Handler) ListMetrics(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}

	metrics, err := h.metricsService.ListByCustomer(c.Request.Context(), auth.CurrentUser(c), customerID)
	if err != nil {
		respondError(c, err, "failed to fetch metrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

func (h *Handler) GetMetric(c *gin.Context) {
	m, err := h.metricsService.Get(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch metric")
		return
	}

	c.JSON(http.StatusOK, gin.H{"metric": m})
}

func (h *Handler) CreateMetric(c *gin.Context) {
	var req createMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.metricsService.Create(c.Request.Context(), auth.CurrentUser(c), req.toInput())
	if err != nil {
		respondError(c, err, "failed to create metric")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"metric": m})
}

func (h *Handler) UpdateMetric(c *gin.Context) {
	var req updateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.metricsService.Update(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err, "failed to update metric")
		return
	}

	c.JSON(http.StatusOK, gin.H{"metric": m})
}

func (h *Handler) DeleteMetric(c *gin.Context) {
	if err := h.metricsService.Delete(c.Request.Context(), auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete metric")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrMetricNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
