package service

import (
	"errors"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

// UserStore is the persistence surface the service needs; satisfied by
// repository.UserRepository.
type UserStore interface {
	GetByFirebaseUID(uid string) (*domain.User, error)
	GetByID(id string) (*domain.User, error)
	List() ([]*domain.User, error)
	Create(user *domain.User) error
	Update(user *domain.User) error
	UpdateRole(id string, role domain.Role) error
	UpdateTheme(firebaseUID string, theme domain.Theme) error
	UpdateLastLogin(firebaseUID string) error
	Delete(id string) error
}

type AuthService struct {
	userRepo UserStore
}

func NewAuthService(userRepo UserStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (s *AuthService) GetUserByFirebaseUID(uid string) (*domain.User, error) {
	return s.userRepo.GetByFirebaseUID(uid)
}

// EnsureUser loads the user for an authenticated Firebase UID, creating
// the row on first login with the default role.
func (s *AuthService) EnsureUser(uid, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if email == "" {
		// Some providers withhold the email claim; keep the row usable.
		email = uid + "@firebase.local"
	}

	user = &domain.User{
		FirebaseUID: uid,
		Email:       email,
		Name:        email,
		Role:        domain.RoleUser,
		Theme:       domain.ThemeSystem,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SyncUser creates or updates a user from Firebase Auth data after login.
func (s *AuthService) SyncUser(req *domain.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByFirebaseUID(req.FirebaseUID)

	if err == nil && existing != nil {
		// Preserve stored data when the request omits a field.
		if req.Email != "" {
			existing.Email = req.Email
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Theme != "" {
			existing.Theme = req.Theme
		}
		// Role is NOT synced from the client; only ChangeRole touches it.

		if err := s.userRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		Theme:       req.Theme,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Theme == "" {
		user.Theme = domain.ThemeSystem
	}
	if user.Name == "" {
		user.Name = user.Email
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile updates the caller's own profile fields.
func (s *AuthService) UpdateProfile(uid string, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Theme != nil {
		user.Theme = *req.Theme
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetTheme returns the stored theme preference, defaulting to system for
// unknown users so the dashboard always has something to render.
func (s *AuthService) GetTheme(uid string) domain.Theme {
	user, err := s.userRepo.GetByFirebaseUID(uid)
	if err != nil {
		return domain.ThemeSystem
	}
	if user.Theme == "" {
		return domain.ThemeSystem
	}
	return user.Theme
}

// SetTheme persists the caller's theme preference.
func (s *AuthService) SetTheme(uid string, theme domain.Theme) error {
	return s.userRepo.UpdateTheme(uid, theme)
}

// ListUsers returns all users; admin only.
func (s *AuthService) ListUsers(actor *domain.User) ([]*domain.User, error) {
	if !actor.HasPermission(domain.RequireRole(domain.RoleAdmin)) {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.List()
}

// ChangeRole sets a user's role. Admin only; atomic single-field write.
func (s *AuthService) ChangeRole(actor *domain.User, targetID string, role domain.Role) (*domain.User, error) {
	if !actor.HasPermission(domain.RequireRole(domain.RoleAdmin)) {
		return nil, domain.ErrForbidden
	}

	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, domain.ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(targetID)
}

// DeleteUser removes a user; admin only. Admins cannot delete themselves.
func (s *AuthService) DeleteUser(actor *domain.User, targetID string) error {
	if !actor.HasPermission(domain.RequireRole(domain.RoleAdmin)) {
		return domain.ErrForbidden
	}
	if actor != nil && actor.ID == targetID {
		return domain.ErrForbidden
	}
	return s.userRepo.Delete(targetID)
}

// RecordLogin updates the last login timestamp
func (s *AuthService) RecordLogin(uid string) error {
	return s.userRepo.UpdateLastLogin(uid)
}
