package http

import (
	"github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/customers/service"
)

type Handler struct {
	customerService   *service.CustomerService
	assignmentService *service.AssignmentService
}

func New(customerService *service.CustomerService, assignmentService *service.AssignmentService) *Handler {
	return &Handler{
		customerService:   customerService,
		assignmentService: assignmentService,
	}
}

type createCustomerRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Status      string  `json:"status"`
}

func (r createCustomerRequest) toRequest() domain.CreateCustomerRequest {
	return domain.CreateCustomerRequest{
		Name:        r.Name,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Status:      domain.Status(r.Status),
	}
}

type updateCustomerRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r updateCustomerRequest) toRequest() domain.UpdateCustomerRequest {
	req := domain.UpdateCustomerRequest{
		Name:        r.Name,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		req.Status = &s
	}
	return req
}

type assignRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
}
