package domain

import "errors"

var (
	// ErrUserNotFound user row does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken another user already owns this email
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidRole role string outside the closed set
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTheme theme string outside the closed set
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrForbidden acting user lacks the required role
	ErrForbidden = errors.New("forbidden")
)
