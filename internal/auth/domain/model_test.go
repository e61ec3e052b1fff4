package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	user := &User{Role: RoleUser}
	client := &User{Role: RoleClient}

	t.Run("admin passes every gate", func(t *testing.T) {
		assert.True(t, admin.HasPermission(RequireRole(RoleAdmin)))
		assert.True(t, admin.HasPermission(RequireRole(RoleUser)))
		assert.True(t, admin.HasPermission(RequireRole(RoleClient)))
		assert.True(t, admin.HasPermission(RequireAnyRole(RoleUser, RoleClient)))
	})

	t.Run("exact role match", func(t *testing.T) {
		assert.True(t, user.HasPermission(RequireRole(RoleUser)))
		assert.True(t, client.HasPermission(RequireRole(RoleClient)))
	})

	t.Run("set membership", func(t *testing.T) {
		assert.True(t, user.HasPermission(RequireAnyRole(RoleAdmin, RoleUser)))
		assert.False(t, client.HasPermission(RequireAnyRole(RoleAdmin, RoleUser)))
	})

	t.Run("no escalation for client", func(t *testing.T) {
		assert.False(t, client.HasPermission(RequireRole(RoleAdmin)))
		assert.False(t, client.HasPermission(RequireRole(RoleUser)))
	})

	t.Run("user cannot reach admin gates", func(t *testing.T) {
		assert.False(t, user.HasPermission(RequireRole(RoleAdmin)))
	})

	t.Run("nil user always denied", func(t *testing.T) {
		var nobody *User
		assert.False(t, nobody.HasPermission(RequireRole(RoleUser)))
		assert.False(t, nobody.HasPermission(RequireAnyRole(RoleAdmin, RoleUser, RoleClient)))
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		perm := RequireAnyRole(RoleAdmin, RoleUser)
		for i := 0; i < 100; i++ {
			assert.True(t, user.HasPermission(perm))
		}
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "user", "client"} {
		r, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), r)
	}

	_, err := ParseRole("superadmin")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestParseTheme(t *testing.T) {
	for _, valid := range []string{"dark", "light", "system"} {
		th, err := ParseTheme(valid)
		require.NoError(t, err)
		assert.Equal(t, Theme(valid), th)
	}

	_, err := ParseTheme("solarized")
	assert.Error(t, err)
}
