package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	customersdomain "github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/dashboard/service"
)

type Handler struct {
	summaryService *service.SummaryService
}

func New(summaryService *service.SummaryService) *Handler {
	return &Handler{summaryService: summaryService}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/summary", h.GetSummary)
}

// GetSummary serves the stat-card aggregates. Filters: required customer_id,
// optional year, optional months as a comma-separated list of month names.
func (h *Handler) GetSummary(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}

	var months []string
	if raw := c.Query("months"); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				months = append(months, m)
			}
		}
	}

	report, err := h.summaryService.Summarize(c.Request.Context(), auth.CurrentUser(c), customerID, c.Query("year"), months)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		case errors.Is(err, customersdomain.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
