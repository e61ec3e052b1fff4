package service

import (
	"context"
	"log"
	"math"

	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

// MetricStore is the persistence surface; satisfied by repository.Repo.
type MetricStore interface {
	Create(ctx context.Context, m *domain.Metric) error
	GetByID(ctx context.Context, id string) (*domain.Metric, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Metric, error)
	ListAll(ctx context.Context) ([]domain.Metric, error)
	Update(ctx context.Context, m *domain.Metric) error
	UpdateDerived(ctx context.Context, id string, d domain.Derived) error
	Delete(ctx context.Context, id string) error
}

// AccessChecker scopes customer visibility; satisfied by the customers
// service. Clients only see customers assigned to them.
type AccessChecker interface {
	CanView(ctx context.Context, user *authdomain.User, customerID string) (bool, error)
}

// SummaryInvalidator drops cached dashboard summaries after a write;
// satisfied by the dashboard cache repository.
type SummaryInvalidator interface {
	InvalidateCustomer(ctx context.Context, customerID string) error
}

type MetricsService struct {
	repo        MetricStore
	access      AccessChecker
	invalidator SummaryInvalidator
}

func NewMetricsService(repo MetricStore, access AccessChecker, invalidator SummaryInvalidator) *MetricsService {
	return &MetricsService{
		repo:        repo,
		access:      access,
		invalidator: invalidator,
	}
}

// CreateMetricInput is a new reporting-period row; derived fields are
// always computed server-side, never accepted from the caller.
type CreateMetricInput struct {
	CustomerID string
	Year       string
	Month      string
	Week       string
	Raw        domain.RawMetrics
}

// UpdateMetricInput is a partial edit of an existing row.
type UpdateMetricInput struct {
	Year  *string
	Month *string
	Week  *string
	Raw   domain.RawPatch
}

var metricWrite = authdomain.RequireAnyRole(authdomain.RoleAdmin, authdomain.RoleUser)

func (s *MetricsService) Create(ctx context.Context, actor *authdomain.User, in CreateMetricInput) (*domain.Metric, error) {
	if !actor.HasPermission(metricWrite) {
		return nil, authdomain.ErrForbidden
	}

	if err := in.Raw.Validate(); err != nil {
		return nil, err
	}

	m := &domain.Metric{
		CustomerID: in.CustomerID,
		Year:       in.Year,
		Month:      in.Month,
		Week:       in.Week,
		RawMetrics: in.Raw,
		Derived:    domain.ComputeDerived(in.Raw),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, m.CustomerID)
	return m, nil
}

func (s *MetricsService) Get(ctx context.Context, actor *authdomain.User, id string) (*domain.Metric, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.CanView(ctx, actor, m.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrForbidden
	}

	return m, nil
}

func (s *MetricsService) ListByCustomer(ctx context.Context, actor *authdomain.User, customerID string) ([]domain.Metric, error) {
	ok, err := s.access.CanView(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrForbidden
	}

	return s.repo.ListByCustomer(ctx, customerID)
}

// Update applies a partial edit. Raw counters are merged over the stored
// row first, then ALL derived fields are recomputed from the merged view;
// derived values are never patched on their own.
func (s *MetricsService) Update(ctx context.Context, actor *authdomain.User, id string, in UpdateMetricInput) (*domain.Metric, error) {
	if !actor.HasPermission(metricWrite) {
		return nil, authdomain.ErrForbidden
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := m.RawMetrics.Merge(in.Raw)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if in.Year != nil {
		m.Year = *in.Year
	}
	if in.Month != nil {
		m.Month = *in.Month
	}
	if in.Week != nil {
		m.Week = *in.Week
	}
	m.RawMetrics = merged
	m.Derived = domain.ComputeDerived(merged)

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, m.CustomerID)
	return m, nil
}

func (s *MetricsService) Delete(ctx context.Context, actor *authdomain.User, id string) error {
	if !actor.HasPermission(metricWrite) {
		return authdomain.ErrForbidden
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, m.CustomerID)
	return nil
}

// derivedDrifted compares stored and recomputed ratios with a small
// epsilon to ignore float round-trip noise.
func derivedDrifted(stored, want domain.Derived) bool {
	const eps = 1e-6
	return math.Abs(stored.CTR-want.CTR) > eps ||
		math.Abs(stored.CPC-want.CPC) > eps ||
		math.Abs(stored.CPA-want.CPA) > eps
}

// RecomputeAll restores the derived-equals-function-of-raw invariant for
// rows touched outside the API (manual SQL fixes, imports). Returns the
// number of repaired rows. Run nightly by the cron scheduler.
func (s *MetricsService) RecomputeAll(ctx context.Context) (int, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, m := range rows {
		want := domain.ComputeDerived(m.RawMetrics)
		if !derivedDrifted(m.Derived, want) {
			continue
		}
		if err := s.repo.UpdateDerived(ctx, m.ID, want); err != nil {
			return repaired, err
		}
		s.invalidate(ctx, m.CustomerID)
		repaired++
	}
	return repaired, nil
}

func (s *MetricsService) invalidate(ctx context.Context, customerID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateCustomer(ctx, customerID); err != nil {
		// Stale cache entries expire by TTL anyway.
		log.Printf("[metrics] cache invalidation failed for customer %s: %v", customerID, err)
	}
}
