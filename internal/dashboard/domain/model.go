package domain

import (
	metricsdomain "github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
)

// SummaryReport is the aggregated view behind the dashboard stat cards:
// totals over the selected periods, averages derived from those totals,
// and the change between the two most recent rows.
type SummaryReport struct {
	CustomerID string                `json:"customer_id"`
	Year       string                `json:"year,omitempty"`
	Months     []string              `json:"months,omitempty"`
	Rows       int                   `json:"rows"`
	Summary    metricsdomain.Summary `json:"summary"`
	Changes    metricsdomain.Changes `json:"changes"`
}
