package domain

import "time"

// RawMetrics are the authoritative counters entered per reporting period.
type RawMetrics struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Cost        float64 `json:"cost"`
}

// Derived are the three ratios computed from RawMetrics. Never stored or
// patched independently of their inputs.
type Derived struct {
	CTR float64 `json:"ctr"` // percentage, not fraction
	CPC float64 `json:"cpc"`
	CPA float64 `json:"cpa"`
}

// RawPatch is a partial update to RawMetrics; nil fields keep stored values.
type RawPatch struct {
	Impressions *int     `json:"impressions,omitempty"`
	Clicks      *int     `json:"clicks,omitempty"`
	Conversions *int     `json:"conversions,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
}

// Metric is one reporting-period row for a customer. Rows are mutable and
// edited in place, not append-only.
type Metric struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Week       string `json:"week"` // e.g. "Week 1"
	RawMetrics
	Derived
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary aggregates a set of metric rows for the dashboard cards.
// The averages are computed from the totals, not as a mean of per-period
// ratios, so high-volume periods carry their real weight.
type Summary struct {
	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	TotalConversions int     `json:"total_conversions"`
	TotalCost        float64 `json:"total_cost"`
	AvgCTR           float64 `json:"avg_ctr"`
	AvgCPC           float64 `json:"avg_cpc"`
	AvgCPA           float64 `json:"avg_cpa"`
}

// Changes are the period-over-period deltas of the last two rows.
type Changes struct {
	Clicks      float64 `json:"clicks_change"`
	Conversions float64 `json:"conversions_change"`
	CTR         float64 `json:"ctr_change"`
	CPA         float64 `json:"cpa_change"`
}
