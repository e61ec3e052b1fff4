package service

import (
	"context"

	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
)

// CustomerStore is the persistence surface; satisfied by repository.Repo.
type CustomerStore interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Customer, error)
	ListUnassigned(ctx context.Context) ([]domain.Customer, error)
	ListAssignable(ctx context.Context, userID string) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	SetOwner(ctx context.Context, customerID, userID string) error
	ClearOwner(ctx context.Context, customerID string) error
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	repo CustomerStore
}

func NewCustomerService(repo CustomerStore) *CustomerService {
	return &CustomerService{repo: repo}
}

var customerWrite = authdomain.RequireAnyRole(authdomain.RoleAdmin, authdomain.RoleUser)

func (s *CustomerService) Create(ctx context.Context, actor *authdomain.User, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	if !actor.HasPermission(customerWrite) {
		return nil, authdomain.ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, domain.ErrInvalidStatus
	}

	c := &domain.Customer{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      status,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, actor *authdomain.User, id string) (*domain.Customer, error) {
	ok, err := s.CanView(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrForbidden
	}

	return s.repo.GetByID(ctx, id)
}

// List returns every customer for staff; client users only see customers
// assigned to them.
func (s *CustomerService) List(ctx context.Context, actor *authdomain.User) ([]domain.Customer, error) {
	if actor == nil {
		return nil, authdomain.ErrForbidden
	}

	if actor.Role == authdomain.RoleClient {
		return s.repo.ListByOwner(ctx, actor.ID)
	}
	return s.repo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, actor *authdomain.User, id string, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if !actor.HasPermission(customerWrite) {
		return nil, authdomain.ErrForbidden
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.ContactName != nil {
		c.ContactName = *req.ContactName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Status != nil {
		if _, err := domain.ParseStatus(string(*req.Status)); err != nil {
			return nil, domain.ErrInvalidStatus
		}
		c.Status = *req.Status
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, actor *authdomain.User, id string) error {
	if !actor.HasPermission(customerWrite) {
		return authdomain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// CanView implements the access check the metrics and dashboard services
// depend on. Staff see everything; clients only customers assigned to them.
func (s *CustomerService) CanView(ctx context.Context, actor *authdomain.User, customerID string) (bool, error) {
	if actor == nil {
		return false, nil
	}
	if actor.Role == authdomain.RoleAdmin || actor.Role == authdomain.RoleUser {
		return true, nil
	}

	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return false, err
	}
	return c.UserID != nil && *c.UserID == actor.ID, nil
}
