package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const metricColumns = `id, customer_id, year, month, week,
	impressions, clicks, conversions, cost, ctr, cpc, cpa,
	created_at, updated_at`

func scanMetric(row pgx.Row) (*domain.Metric, error) {
	var m domain.Metric
	err := row.Scan(
		&m.ID, &m.CustomerID, &m.Year, &m.Month, &m.Week,
		&m.Impressions, &m.Clicks, &m.Conversions, &m.Cost,
		&m.CTR, &m.CPC, &m.CPA,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) Create(ctx context.Context, m *domain.Metric) error {
	const q = `
insert into metrics (customer_id, year, month, week, impressions, clicks, conversions, cost, ctr, cpc, cpa)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
returning id, created_at, updated_at;
`
	return r.db.QueryRow(ctx, q,
		m.CustomerID, m.Year, m.Month, m.Week,
		m.Impressions, m.Clicks, m.Conversions, m.Cost,
		m.CTR, m.CPC, m.CPA,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Metric, error) {
	const q = `select ` + metricColumns + ` from metrics where id = $1::uuid;`

	m, err := scanMetric(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMetricNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByCustomer returns the customer's rows ordered year, month, week
// ascending, matching the reporting-period order the dashboard expects.
func (r *Repo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Metric, error) {
	const q = `
select ` + metricColumns + `
from metrics
where customer_id = $1::uuid
order by year asc, month asc, week asc;
`
	rows, err := r.db.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListAll returns every row; used by the nightly integrity sweep.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Metric, error) {
	const q = `select ` + metricColumns + ` from metrics order by customer_id, year, month, week;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// Update rewrites raw counters together with the freshly computed derived
// fields in one statement, keeping the invariant that derived always equals
// the function of raw at last write.
func (r *Repo) Update(ctx context.Context, m *domain.Metric) error {
	const q = `
update metrics
set year = $2, month = $3, week = $4,
    impressions = $5, clicks = $6, conversions = $7, cost = $8,
    ctr = $9, cpc = $10, cpa = $11,
    updated_at = now()
where id = $1::uuid
returning updated_at;
`
	err := r.db.QueryRow(ctx, q,
		m.ID, m.Year, m.Month, m.Week,
		m.Impressions, m.Clicks, m.Conversions, m.Cost,
		m.CTR, m.CPC, m.CPA,
	).Scan(&m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrMetricNotFound
	}
	return err
}

// UpdateDerived refreshes only the derived columns; used by the sweep when
// stored ratios have drifted from the raw counters.
func (r *Repo) UpdateDerived(ctx context.Context, id string, d domain.Derived) error {
	const q = `
update metrics
set ctr = $2, cpc = $3, cpa = $4, updated_at = now()
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id, d.CTR, d.CPC, d.CPA)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrMetricNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `delete from metrics where id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrMetricNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]domain.Metric, error) {
	out := make([]domain.Metric, 0, 16)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
