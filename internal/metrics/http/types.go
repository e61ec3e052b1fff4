package http

import (
	"github.com/admetrics-hub/admetrics-backend/internal/metrics/domain"
	"github.com/admetrics-hub/admetrics-backend/internal/metrics/service"
)

type Handler struct {
	metricsService *service.MetricsService
}

func New(metricsService *service.MetricsService) *Handler {
	return &Handler{
		metricsService: metricsService,
	}
}

type createMetricRequest struct {
	CustomerID  string  `json:"customer_id" binding:"required"`
	Year        string  `json:"year" binding:"required"`
	Month       string  `json:"month" binding:"required"`
	Week        string  `json:"week" binding:"required"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Cost        float64 `json:"cost"`
}

func (r createMetricRequest) toInput() service.CreateMetricInput {
	return service.CreateMetricInput{
		CustomerID: r.CustomerID,
		Year:       r.Year,
		Month:      r.Month,
		Week:       r.Week,
		Raw: domain.RawMetrics{
			Impressions: r.Impressions,
			Clicks:      r.Clicks,
			Conversions: r.Conversions,
			Cost:        r.Cost,
		},
	}
}

type updateMetricRequest struct {
	Year        *string  `json:"year,omitempty"`
	Month       *string  `json:"month,omitempty"`
	Week        *string  `json:"week,omitempty"`
	Impressions *int     `json:"impressions,omitempty"`
	Clicks      *int     `json:"clicks,omitempty"`
	Conversions *int     `json:"conversions,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
}

func (r updateMetricRequest) toInput() service.UpdateMetricInput {
	return service.UpdateMetricInput{
		Year:  r.Year,
		Month: r.Month,
		Week:  r.Week,
		Raw: domain.RawPatch{
			Impressions: r.Impressions,
			Clicks:      r.Clicks,
			Conversions: r.Conversions,
			Cost:        r.Cost,
		},
	}
}
