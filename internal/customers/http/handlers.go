package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListCustomers)
	rg.POST("", h.CreateCustomer)
	rg.GET("/unassigned", h.ListUnassigned)
	rg.GET("/:id", h.GetCustomer)
	rg.PUT("/:id", h.UpdateCustomer)
	rg.DELETE("/:id", h.DeleteCustomer)
}

// RegisterAdmin wires the assignment endpoints under /admin.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.AssignCustomer)
		assignments.DELETE("/:customerID", h.UnassignCustomer)
		assignments.GET("/:userID", h.ListAssigned)
		assignments.GET("/:userID/assignable", h.ListAssignable)
	}
}

// ListCustomers returns every customer for staff roles; for client users it
// is scoped to customers assigned to them.
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err, "failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.Get(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), auth.CurrentUser(c), req.toRequest())
	if err != nil {
		respondError(c, err, "failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), req.toRequest())
	if err != nil {
		respondError(c, err, "failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AssignCustomer(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.assignmentService.Assign(c.Request.Context(), auth.CurrentUser(c), req.CustomerID, req.UserID); err != nil {
		respondError(c, err, "failed to assign customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UnassignCustomer(c *gin.Context) {
	if err := h.assignmentService.Unassign(c.Request.Context(), auth.CurrentUser(c), c.Param("customerID")); err != nil {
		respondError(c, err, "failed to unassign customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListAssigned(c *gin.Context) {
	customers, err := h.assignmentService.ListAssigned(c.Request.Context(), auth.CurrentUser(c), c.Param("userID"))
	if err != nil {
		respondError(c, err, "failed to fetch assigned customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) ListAssignable(c *gin.Context) {
	customers, err := h.assignmentService.ListAssignable(c.Request.Context(), auth.CurrentUser(c), c.Param("userID"))
	if err != nil {
		respondError(c, err, "failed to fetch assignable customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) ListUnassigned(c *gin.Context) {
	customers, err := h.assignmentService.ListUnassigned(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondError(c, err, "failed to fetch unassigned customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func respondError(c *gin.Context, err error, fallback string) {
	var ae *domain.AssignmentError

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer status"})
	case errors.As(err, &ae):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ae.Reason, "customer_id": ae.CustomerID})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
