package service

import (
	"context"
	"log"
	"strings"

	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/dashboard/domain"
	metricsdomain "github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

// MetricLister reads a customer's metric rows in reporting-period order;
// satisfied by the metrics repository.
type MetricLister interface {
	ListByCustomer(ctx context.Context, customerID string) ([]metricsdomain.Metric, error)
}

// AccessChecker scopes customer visibility; satisfied by the customers
// service.
type AccessChecker interface {
	CanView(ctx context.Context, user *authdomain.User, customerID string) (bool, error)
}

// SummaryCache is the Redis-backed report cache; satisfied by the dashboard
// cache repository.
type SummaryCache interface {
	Get(ctx context.Context, customerID, filter string) (*domain.SummaryReport, error)
	Set(ctx context.Context, customerID, filter string, report *domain.SummaryReport) error
}

type SummaryService struct {
	metrics MetricLister
	access  AccessChecker
	cache   SummaryCache
}

func NewSummaryService(metrics MetricLister, access AccessChecker, cache SummaryCache) *SummaryService {
	return &SummaryService{
		metrics: metrics,
		access:  access,
		cache:   cache,
	}
}

// Summarize aggregates the customer's rows for the optional year/months
// filter. Reports are served from cache when available; cache failures fall
// through to a fresh computation.
func (s *SummaryService) Summarize(ctx context.Context, actor *authdomain.User, customerID, year string, months []string) (*domain.SummaryReport, error) {
	ok, err := s.access.CanView(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrForbidden
	}

	filter := filterKey(year, months)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, customerID, filter)
		if err != nil {
			log.Printf("[dashboard] cache read failed for customer %s: %v", customerID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := s.metrics.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rows = filterRows(rows, year, months)

	report := &domain.SummaryReport{
		CustomerID: customerID,
		Year:       year,
		Months:     months,
		Rows:       len(rows),
		Summary:    metricsdomain.Summarize(rows),
		Changes:    metricsdomain.LatestChanges(rows),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, customerID, filter, report); err != nil {
			log.Printf("[dashboard] cache write failed for customer %s: %v", customerID, err)
		}
	}

	return report, nil
}

// filterKey builds a stable cache key suffix from the filter. Months keep
// their request order; the dashboard always sends them calendar-ordered.
func filterKey(year string, months []string) string {
	if year == "" && len(months) == 0 {
		return "all"
	}
	parts := []string{year}
	parts = append(parts, months...)
	return strings.ToLower(strings.Join(parts, ":"))
}

func filterRows(rows []metricsdomain.Metric, year string, months []string) []metricsdomain.Metric {
	if year == "" && len(months) == 0 {
		return rows
	}

	wantMonth := make(map[string]bool, len(months))
	for _, m := range months {
		wantMonth[strings.ToLower(m)] = true
	}

	out := make([]metricsdomain.Metric, 0, len(rows))
	for _, m := range rows {
		if year != "" && m.Year != year {
			continue
		}
		if len(wantMonth) > 0 && !wantMonth[strings.ToLower(m.Month)] {
			continue
		}
		out = append(out, m)
	}
	return out
}
