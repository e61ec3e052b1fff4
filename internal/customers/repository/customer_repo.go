package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/admetrics-hub/admetrics-backend/internal/customers/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const customerColumns = `id, name, contact_name, email, phone, status,
	date_added, user_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		c      domain.Customer
		status string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.ContactName, &c.Email, &c.Phone, &status,
		&c.DateAdded, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status, err = domain.ParseStatus(status)
	if err != nil {
		// Legacy rows predate the enum; treat them as inactive.
		c.Status = domain.StatusInactive
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, c *domain.Customer) error {
	const q = `
insert into customers (name, contact_name, email, phone, status, date_added)
values ($1, $2, $3, $4, $5, now())
returning id, date_added, created_at, updated_at;
`
	return r.db.QueryRow(ctx, q,
		c.Name, c.ContactName, c.Email, c.Phone, string(c.Status),
	).Scan(&c.ID, &c.DateAdded, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `select ` + customerColumns + ` from customers where id = $1::uuid;`

	c, err := scanCustomer(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `select ` + customerColumns + ` from customers order by name asc;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListByOwner returns the customers assigned to the given user.
func (r *Repo) ListByOwner(ctx context.Context, userID string) ([]domain.Customer, error) {
	const q = `
select ` + customerColumns + `
from customers
where user_id = $1::uuid
order by name asc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListUnassigned returns customers with no owner at all.
func (r *Repo) ListUnassigned(ctx context.Context) ([]domain.Customer, error) {
	const q = `
select ` + customerColumns + `
from customers
where user_id is null
order by name asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListAssignable returns customers not currently owned by the given user,
// including customers owned by somebody else (assign overwrites).
func (r *Repo) ListAssignable(ctx context.Context, userID string) ([]domain.Customer, error) {
	const q = `
select ` + customerColumns + `
from customers
where user_id is null or user_id <> $1::uuid
order by name asc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *Repo) Update(ctx context.Context, c *domain.Customer) error {
	const q = `
update customers
set name = $2, contact_name = $3, email = $4, phone = $5, status = $6,
    updated_at = now()
where id = $1::uuid
returning updated_at;
`
	err := r.db.QueryRow(ctx, q,
		c.ID, c.Name, c.ContactName, c.Email, c.Phone, string(c.Status),
	).Scan(&c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCustomerNotFound
	}
	return err
}

// SetOwner points the customer at the given user, replacing any prior owner.
func (r *Repo) SetOwner(ctx context.Context, customerID, userID string) error {
	const q = `update customers set user_id = $2::uuid, updated_at = now() where id = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, customerID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *Repo) ClearOwner(ctx context.Context, customerID string) error {
	const q = `update customers set user_id = null, updated_at = now() where id = $1::uuid;`

	ct, err := r.db.Exec(ctx, q, customerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Delete removes the customer; metrics rows follow via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `delete from customers where id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, 16)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
