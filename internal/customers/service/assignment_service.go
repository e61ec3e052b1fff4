package service

import (
	"context"
	"errors"

	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
)

// UserDirectory looks up users for assignment checks; satisfied by the
// auth user repository.
type UserDirectory interface {
	GetByID(id string) (*authdomain.User, error)
}

// AssignmentService maintains the customer-to-client ownership links.
// All operations are admin-only.
type AssignmentService struct {
	repo  CustomerStore
	users UserDirectory
}

func NewAssignmentService(repo CustomerStore, users UserDirectory) *AssignmentService {
	return &AssignmentService{repo: repo, users: users}
}

// Assign gives the customer to the target user, replacing any prior owner.
// The target must exist and hold the client role. Assigning a customer to
// its current owner is a no-op.
//
// Two concurrent assigns of the same customer race last-write-wins; the
// admin screen is a single-operator tool so this is acceptable.
func (s *AssignmentService) Assign(ctx context.Context, actor *authdomain.User, customerID, userID string) error {
	if !actor.IsAdmin() {
		return authdomain.ErrForbidden
	}

	target, err := s.users.GetByID(userID)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		return domain.NewAssignmentError(customerID, userID, "user does not exist")
	}
	if err != nil {
		return err
	}
	if target.Role != authdomain.RoleClient {
		return domain.NewAssignmentError(customerID, userID, "user is not a client")
	}

	c, err := s.repo.GetByID(ctx, customerID)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.NewAssignmentError(customerID, userID, "customer does not exist")
	}
	if err != nil {
		return err
	}

	if c.UserID != nil && *c.UserID == userID {
		return nil
	}

	return s.repo.SetOwner(ctx, customerID, userID)
}

// Unassign clears the customer's owner. Unassigning an already unowned
// customer is a no-op.
func (s *AssignmentService) Unassign(ctx context.Context, actor *authdomain.User, customerID string) error {
	if !actor.IsAdmin() {
		return authdomain.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.NewAssignmentError(customerID, "", "customer does not exist")
		}
		return err
	}

	return s.repo.ClearOwner(ctx, customerID)
}

// ListAssigned returns the customers owned by the given user.
func (s *AssignmentService) ListAssigned(ctx context.Context, actor *authdomain.User, userID string) ([]domain.Customer, error) {
	if !actor.IsAdmin() {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.ListByOwner(ctx, userID)
}

// ListUnassigned returns customers with no owner.
func (s *AssignmentService) ListUnassigned(ctx context.Context, actor *authdomain.User) ([]domain.Customer, error) {
	if !actor.IsAdmin() {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.ListUnassigned(ctx)
}

// ListAssignable returns customers the given user does not already own,
// including customers owned by other users.
func (s *AssignmentService) ListAssignable(ctx context.Context, actor *authdomain.User, userID string) ([]domain.Customer, error) {
	if !actor.IsAdmin() {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.ListAssignable(ctx, userID)
}
