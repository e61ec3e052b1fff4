package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold. Exactly one per user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleClient Role = "client"
)

// ParseRole validates a raw role string coming from the database or an
// admin request body.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Theme is a user's dashboard theme preference.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight, ThemeSystem:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// User represents a dashboard user. Identity is delegated to Firebase Auth;
// FirebaseUID is the stable external identifier, ID is our row key.
type User struct {
	ID          string     `json:"id"`
	FirebaseUID string     `json:"firebase_uid"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        Role       `json:"role"`
	Theme       Theme      `json:"theme_preference"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Permission wraps the "single role or set of roles" shape used by the UI
// role gates, so call sites don't juggle scalar-or-slice values.
type Permission struct {
	roles []Role
}

// RequireRole builds a permission satisfied by exactly one role
// (plus admin, which always passes).
func RequireRole(r Role) Permission {
	return Permission{roles: []Role{r}}
}

// RequireAnyRole builds a permission satisfied by any of the given roles.
func RequireAnyRole(roles ...Role) Permission {
	return Permission{roles: roles}
}

// Roles returns the roles that satisfy this permission.
func (p Permission) Roles() []Role {
	return p.roles
}

// HasPermission reports whether the user may perform an action guarded by p.
//
// Rules: a nil (unauthenticated) user never passes; admin always passes;
// otherwise the user's role must be one of the permitted roles. There is no
// implicit escalation: client never satisfies a bare "user" requirement.
// The check is pure and safe to call per request or per render.
func (u *User) HasPermission(p Permission) bool {
	if u == nil {
		return false
	}

	if u.Role == RoleAdmin {
		return true
	}

	for _, r := range p.roles {
		if u.Role == r {
			return true
		}
	}

	return false
}

// IsAdmin is shorthand for the admin-only gates.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CreateUserRequest carries the data needed to create or sync a user
// after Firebase authentication.
type CreateUserRequest struct {
	FirebaseUID string
	Email       string
	Name        string
	Role        Role
	Theme       Theme
}

// UpdateUserRequest carries optional profile fields; nil means "leave as is".
type UpdateUserRequest struct {
	Name  *string
	Theme *Theme
}
