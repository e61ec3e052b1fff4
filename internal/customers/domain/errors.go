package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidStatus    = errors.New("invalid customer status")
	ErrAssignment       = errors.New("assignment failed")
)

// AssignmentError explains why a customer could not be (un)assigned.
// It wraps ErrAssignment so callers can match with errors.Is.
type AssignmentError struct {
	CustomerID string
	UserID     string
	Reason     string
}

func (e *AssignmentError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("assignment of customer %s failed: %s", e.CustomerID, e.Reason)
	}
	return fmt.Sprintf("assignment of customer %s to user %s failed: %s", e.CustomerID, e.UserID, e.Reason)
}

func (e *AssignmentError) Is(target error) bool {
	return target == ErrAssignment
}

func NewAssignmentError(customerID, userID, reason string) *AssignmentError {
	return &AssignmentError{CustomerID: customerID, UserID: userID, Reason: reason}
}
