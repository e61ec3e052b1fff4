package domain

import (
	"fmt"
	"time"
)

// Status is a customer's lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Customer is an advertiser account tracked on the dashboard. UserID is the
// owning client user; nil means unassigned. A customer has at most one owner.
type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Status      Status    `json:"status"`
	DateAdded   time.Time `json:"date_added"`
	UserID      *string   `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCustomerRequest carries the fields accepted when registering a
// new customer.
type CreateCustomerRequest struct {
	Name        string
	ContactName string
	Email       string
	Phone       *string
	Status      Status
}

// UpdateCustomerRequest carries optional edits; nil means "leave as is".
type UpdateCustomerRequest struct {
	Name        *string
	ContactName *string
	Email       *string
	Phone       *string
	Status      *Status
}
