package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

type fakeMetricStore struct {
	rows   map[string]*domain.Metric
	nextID int
}

func newFakeMetricStore() *fakeMetricStore {
	return &fakeMetricStore{rows: make(map[string]*domain.Metric)}
}

func (f *fakeMetricStore) Create(_ context.Context, m *domain.Metric) error {
	f.nextID++
	m.ID = "m-" + strconv.Itoa(f.nextID)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

func (f *fakeMetricStore) GetByID(_ context.Context, id string) (*domain.Metric, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrMetricNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMetricStore) ListByCustomer(_ context.Context, customerID string) ([]domain.Metric, error) {
	out := []domain.Metric{}
	for _, m := range f.rows {
		if m.CustomerID == customerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMetricStore) ListAll(_ context.Context) ([]domain.Metric, error) {
	out := []domain.Metric{}
	for _, m := range f.rows {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMetricStore) Update(_ context.Context, m *domain.Metric) error {
	if _, ok := f.rows[m.ID]; !ok {
		return domain.ErrMetricNotFound
	}
	m.UpdatedAt = time.Now()
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

func (f *fakeMetricStore) UpdateDerived(_ context.Context, id string, d domain.Derived) error {
	m, ok := f.rows[id]
	if !ok {
		return domain.ErrMetricNotFound
	}
	m.Derived = d
	return nil
}

func (f *fakeMetricStore) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return domain.ErrMetricNotFound
	}
	delete(f.rows, id)
	return nil
}

type allowAllAccess struct{}

func (allowAllAccess) CanView(context.Context, *authdomain.User, string) (bool, error) {
	return true, nil
}

type denyAccess struct{}

func (denyAccess) CanView(context.Context, *authdomain.User, string) (bool, error) {
	return false, nil
}

type recordingInvalidator struct {
	customers []string
}

func (r *recordingInvalidator) InvalidateCustomer(_ context.Context, customerID string) error {
	r.customers = append(r.customers, customerID)
	return nil
}

var (
	adminUser  = &authdomain.User{ID: "u-admin", Role: authdomain.RoleAdmin}
	editorUser = &authdomain.User{ID: "u-user", Role: authdomain.RoleUser}
	clientUser = &authdomain.User{ID: "u-client", Role: authdomain.RoleClient}
)

func TestMetricsService_Create(t *testing.T) {
	store := newFakeMetricStore()
	inv := &recordingInvalidator{}
	svc := NewMetricsService(store, allowAllAccess{}, inv)
	ctx := context.Background()

	t.Run("computes derived server-side", func(t *testing.T) {
		m, err := svc.Create(ctx, editorUser, CreateMetricInput{
			CustomerID: "c-1",
			Year:       "2025",
			Month:      "January",
			Week:       "Week 1",
			Raw:        domain.RawMetrics{Impressions: 12500, Clicks: 450, Conversions: 25, Cost: 1200},
		})
		require.NoError(t, err)
		assert.InDelta(t, 3.6, m.CTR, 1e-9)
		assert.InDelta(t, 48.0, m.CPA, 1e-9)
		assert.Contains(t, inv.customers, "c-1")
	})

	t.Run("client role cannot write", func(t *testing.T) {
		_, err := svc.Create(ctx, clientUser, CreateMetricInput{CustomerID: "c-1"})
		assert.ErrorIs(t, err, authdomain.ErrForbidden)
	})

	t.Run("negative input rejected before compute", func(t *testing.T) {
		_, err := svc.Create(ctx, adminUser, CreateMetricInput{
			CustomerID: "c-1",
			Raw:        domain.RawMetrics{Clicks: -1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestMetricsService_UpdateMergesBeforeRecompute(t *testing.T) {
	store := newFakeMetricStore()
	svc := NewMetricsService(store, allowAllAccess{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, editorUser, CreateMetricInput{
		CustomerID: "c-2",
		Raw:        domain.RawMetrics{Impressions: 13200, Clicks: 520, Conversions: 32, Cost: 1350},
	})
	require.NoError(t, err)

	newClicks := 600
	updated, err := svc.Update(ctx, editorUser, created.ID, UpdateMetricInput{
		Raw: domain.RawPatch{Clicks: &newClicks},
	})
	require.NoError(t, err)

	// Unpatched fields come from the stored row.
	assert.Equal(t, 13200, updated.Impressions)
	assert.Equal(t, 600, updated.Clicks)
	// All three derived fields recomputed from the merged view.
	assert.InDelta(t, float64(600)/13200*100, updated.CTR, 1e-9)
	assert.InDelta(t, 1350.0/600, updated.CPC, 1e-9)
	assert.InDelta(t, 1350.0/32, updated.CPA, 1e-9)
}

func TestMetricsService_Visibility(t *testing.T) {
	store := newFakeMetricStore()
	svc := NewMetricsService(store, denyAccess{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminUser, CreateMetricInput{CustomerID: "c-3"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, clientUser, created.ID)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = svc.ListByCustomer(ctx, clientUser, "c-3")
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}

func TestMetricsService_RecomputeAll(t *testing.T) {
	store := newFakeMetricStore()
	inv := &recordingInvalidator{}
	svc := NewMetricsService(store, allowAllAccess{}, inv)
	ctx := context.Background()

	ok, err := svc.Create(ctx, adminUser, CreateMetricInput{
		CustomerID: "c-4",
		Raw:        domain.RawMetrics{Impressions: 1000, Clicks: 50, Conversions: 5, Cost: 100},
	})
	require.NoError(t, err)

	drifted, err := svc.Create(ctx, adminUser, CreateMetricInput{
		CustomerID: "c-4",
		Raw:        domain.RawMetrics{Impressions: 2000, Clicks: 100, Conversions: 10, Cost: 300},
	})
	require.NoError(t, err)

	// Simulate a manual DB edit that bypassed the recompute.
	store.rows[drifted.ID].Derived = domain.Derived{CTR: 99, CPC: 99, CPA: 99}

	repaired, err := svc.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	fixed, err := store.GetByID(ctx, drifted.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fixed.CTR, 1e-9)
	assert.InDelta(t, 3.0, fixed.CPC, 1e-9)
	assert.InDelta(t, 30.0, fixed.CPA, 1e-9)

	untouched, err := store.GetByID(ctx, ok.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, untouched.CTR, 1e-9)
}
