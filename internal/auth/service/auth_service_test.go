package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

// fakeUserStore implements UserStore in memory for service tests.
type fakeUserStore struct {
	byUID  map[string]*domain.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUID: make(map[string]*domain.User)}
}

func (f *fakeUserStore) GetByFirebaseUID(uid string) (*domain.User, error) {
	u, ok := f.byUID[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByID(id string) (*domain.User, error) {
	for _, u := range f.byUID {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserStore) List() ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.byUID))
	for _, u := range f.byUID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserStore) Create(user *domain.User) error {
	f.nextID++
	user.ID = string(rune('a' + f.nextID))
	cp := *user
	f.byUID[user.FirebaseUID] = &cp
	return nil
}

func (f *fakeUserStore) Update(user *domain.User) error {
	if _, ok := f.byUID[user.FirebaseUID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	f.byUID[user.FirebaseUID] = &cp
	return nil
}

func (f *fakeUserStore) UpdateRole(id string, role domain.Role) error {
	for _, u := range f.byUID {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *fakeUserStore) UpdateTheme(uid string, theme domain.Theme) error {
	u, ok := f.byUID[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Theme = theme
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(uid string) error {
	if _, ok := f.byUID[uid]; !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

func (f *fakeUserStore) Delete(id string) error {
	for uid, u := range f.byUID {
		if u.ID == id {
			delete(f.byUID, uid)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func TestEnsureUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	t.Run("creates on first login with default role", func(t *testing.T) {
		u, err := svc.EnsureUser("fb-1", "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.Equal(t, domain.ThemeSystem, u.Theme)
		assert.Equal(t, "ana@example.com", u.Email)
	})

	t.Run("returns existing row on later logins", func(t *testing.T) {
		first, err := svc.EnsureUser("fb-1", "ana@example.com")
		require.NoError(t, err)
		again, err := svc.EnsureUser("fb-1", "other@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "ana@example.com", again.Email)
	})

	t.Run("fills fallback email when claim is missing", func(t *testing.T) {
		u, err := svc.EnsureUser("fb-noemail", "")
		require.NoError(t, err)
		assert.Equal(t, "fb-noemail@firebase.local", u.Email)
	})
}

func TestSyncUser_DoesNotSyncRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	_, err := svc.SyncUser(&domain.CreateUserRequest{
		FirebaseUID: "fb-2",
		Email:       "bob@example.com",
		Name:        "Bob",
	})
	require.NoError(t, err)

	// A later sync cannot smuggle in a role change.
	store.byUID["fb-2"].Role = domain.RoleClient
	u, err := svc.SyncUser(&domain.CreateUserRequest{
		FirebaseUID: "fb-2",
		Email:       "bob@example.com",
		Role:        domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, u.Role)
}

func TestChangeRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	target, err := svc.EnsureUser("fb-3", "carol@example.com")
	require.NoError(t, err)

	admin := &domain.User{ID: "admin-id", Role: domain.RoleAdmin}
	regular := &domain.User{ID: "user-id", Role: domain.RoleUser}

	t.Run("admin changes role", func(t *testing.T) {
		updated, err := svc.ChangeRole(admin, target.ID, domain.RoleClient)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleClient, updated.Role)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		_, err := svc.ChangeRole(regular, target.ID, domain.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("nil actor denied", func(t *testing.T) {
		_, err := svc.ChangeRole(nil, target.ID, domain.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.ChangeRole(admin, target.ID, domain.Role("owner"))
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestTheme(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	_, err := svc.EnsureUser("fb-4", "dee@example.com")
	require.NoError(t, err)

	t.Run("defaults to system for unknown users", func(t *testing.T) {
		assert.Equal(t, domain.ThemeSystem, svc.GetTheme("ghost"))
	})

	t.Run("set and get round trip", func(t *testing.T) {
		require.NoError(t, svc.SetTheme("fb-4", domain.ThemeDark))
		assert.Equal(t, domain.ThemeDark, svc.GetTheme("fb-4"))
	})
}

func TestDeleteUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store)

	target, err := svc.EnsureUser("fb-5", "eve@example.com")
	require.NoError(t, err)

	admin := &domain.User{ID: "admin-id", Role: domain.RoleAdmin}

	t.Run("admin cannot delete self", func(t *testing.T) {
		self := &domain.User{ID: target.ID, Role: domain.RoleAdmin}
		assert.ErrorIs(t, svc.DeleteUser(self, target.ID), domain.ErrForbidden)
	})

	t.Run("admin deletes other user", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(admin, target.ID))
		_, err := store.GetByFirebaseUID("fb-5")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
