package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

func setupUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db)
	return repo, mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "firebase_uid", "email", "name", "role",
		"theme_preference", "created_at", "updated_at", "last_login_at",
	})
}

func TestUserRepository_GetByFirebaseUID(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	t.Run("returns user with parsed role and theme", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, firebase_uid, email`).
			WithArgs("fb-123").
			WillReturnRows(userRows().AddRow(
				"uuid-1", "fb-123", "ana@example.com", "Ana", "client",
				"dark", now, now, nil,
			))

		u, err := repo.GetByFirebaseUID("fb-123")
		require.NoError(t, err)
		assert.Equal(t, "uuid-1", u.ID)
		assert.Equal(t, domain.RoleClient, u.Role)
		assert.Equal(t, domain.ThemeDark, u.Theme)
		assert.Nil(t, u.LastLoginAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrUserNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, firebase_uid, email`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByFirebaseUID("nope")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back on unknown role and theme", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, firebase_uid, email`).
			WithArgs("fb-legacy").
			WillReturnRows(userRows().AddRow(
				"uuid-2", "fb-legacy", "old@example.com", "Old", "moderator",
				"", now, now, now,
			))

		u, err := repo.GetByFirebaseUID("fb-legacy")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleClient, u.Role)
		assert.Equal(t, domain.ThemeSystem, u.Theme)
		assert.NotNil(t, u.LastLoginAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	user := &domain.User{
		FirebaseUID: "fb-9",
		Email:       "new@example.com",
		Name:        "New User",
		Role:        domain.RoleUser,
		Theme:       domain.ThemeSystem,
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("fb-9", "new@example.com", "New User", "user", "system").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("uuid-9", time.Now(), time.Now()))

	err := repo.Create(user)
	require.NoError(t, err)
	assert.Equal(t, "uuid-9", user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	t.Run("updates existing user", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs("uuid-1", "admin").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRole("uuid-1", domain.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs("ghost", "user").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRole("ghost", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateTheme(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("fb-123", "light").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateTheme("fb-123", domain.ThemeLight)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock, db := setupUserRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete("ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
