package repository

import (
	"database/sql"
	"fmt"

	"github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, firebase_uid, email, name, role, theme_preference, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var role, theme string
	var lastLogin sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.FirebaseUID,
		&u.Email,
		&u.Name,
		&role,
		&theme,
		&u.CreatedAt,
		&u.UpdatedAt,
		&lastLogin,
	)
	if err != nil {
		return nil, err
	}

	// Rows predate the closed enums in old databases; fall back rather
	// than refuse to load the user.
	if r, perr := domain.ParseRole(role); perr == nil {
		u.Role = r
	} else {
		u.Role = domain.RoleClient
	}
	if th, perr := domain.ParseTheme(theme); perr == nil {
		u.Theme = th
	} else {
		u.Theme = domain.ThemeSystem
	}

	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}

	return &u, nil
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(uid string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE firebase_uid = $1`

	u, err := scanUser(r.db.QueryRow(query, uid))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by row ID
func (r *UserRepository) GetByID(id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns all users ordered by creation time, newest first.
func (r *UserRepository) List() ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.User, 0, 16)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts a new user row
func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (firebase_uid, email, name, role, theme_preference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		user.FirebaseUID,
		user.Email,
		user.Name,
		string(user.Role),
		string(user.Theme),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return err
	}

	return nil
}

// Update writes mutable profile fields
func (r *UserRepository) Update(user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, theme_preference = $4, updated_at = NOW()
		WHERE firebase_uid = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		user.FirebaseUID,
		user.Email,
		user.Name,
		string(user.Theme),
	).Scan(&user.UpdatedAt)

	if err == sql.ErrNoRows {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	return nil
}

// UpdateRole changes the user's role. Single-field write; takes effect on
// the next permission check, no queued transition.
func (r *UserRepository) UpdateRole(id string, role domain.Role) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, string(role))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// UpdateTheme persists the theme preference
func (r *UserRepository) UpdateTheme(firebaseUID string, theme domain.Theme) error {
	query := `
		UPDATE users
		SET theme_preference = $2, updated_at = NOW()
		WHERE firebase_uid = $1
	`

	result, err := r.db.Exec(query, firebaseUID, string(theme))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp
func (r *UserRepository) UpdateLastLogin(firebaseUID string) error {
	query := `
		UPDATE users
		SET last_login_at = NOW()
		WHERE firebase_uid = $1
	`

	result, err := r.db.Exec(query, firebaseUID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Delete removes the user row. Owned customers are released by the
// customers_user_id FK (ON DELETE SET NULL), not here.
func (r *UserRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
