package domain

// Validate rejects negative counters. Divisor-zero cases are policy, not
// errors; they are handled in ComputeDerived.
func (r RawMetrics) Validate() error {
	if r.Impressions < 0 {
		return newValidationError("impressions", "must be non-negative")
	}
	if r.Clicks < 0 {
		return newValidationError("clicks", "must be non-negative")
	}
	if r.Conversions < 0 {
		return newValidationError("conversions", "must be non-negative")
	}
	if r.Cost < 0 {
		return newValidationError("cost", "must be non-negative")
	}
	return nil
}

// Merge overlays a partial update on stored counters. Used before
// recomputing derived metrics so a patch of one raw field never pairs with
// stale derived values.
func (r RawMetrics) Merge(p RawPatch) RawMetrics {
	out := r
	if p.Impressions != nil {
		out.Impressions = *p.Impressions
	}
	if p.Clicks != nil {
		out.Clicks = *p.Clicks
	}
	if p.Conversions != nil {
		out.Conversions = *p.Conversions
	}
	if p.Cost != nil {
		out.Cost = *p.Cost
	}
	return out
}

// ComputeDerived turns raw counters into CTR/CPC/CPA. Zero denominators
// resolve to 0 so sparse periods render as zeros instead of crashing the
// dashboard.
func ComputeDerived(r RawMetrics) Derived {
	var d Derived
	if r.Impressions > 0 {
		d.CTR = float64(r.Clicks) / float64(r.Impressions) * 100
	}
	if r.Clicks > 0 {
		d.CPC = r.Cost / float64(r.Clicks)
	}
	if r.Conversions > 0 {
		d.CPA = r.Cost / float64(r.Conversions)
	}
	return d
}

// Summarize totals the rows and derives the averages from the totals.
// Averaging per-period percentages would let a tiny period with a huge CTR
// skew the aggregate.
func Summarize(metrics []Metric) Summary {
	var s Summary
	for _, m := range metrics {
		s.TotalImpressions += m.Impressions
		s.TotalClicks += m.Clicks
		s.TotalConversions += m.Conversions
		s.TotalCost += m.Cost
	}

	d := ComputeDerived(RawMetrics{
		Impressions: s.TotalImpressions,
		Clicks:      s.TotalClicks,
		Conversions: s.TotalConversions,
		Cost:        s.TotalCost,
	})
	s.AvgCTR = d.CTR
	s.AvgCPC = d.CPC
	s.AvgCPA = d.CPA
	return s
}

// ChangeField selects which series PeriodChange compares.
type ChangeField string

const (
	FieldClicks      ChangeField = "clicks"
	FieldConversions ChangeField = "conversions"
	FieldCTR         ChangeField = "ctr"
	FieldCPA         ChangeField = "cpa"
)

// PeriodChange returns the percent change from previous to current for one
// field. A zero previous value yields 0. For CPA the sign is inverted:
// spending less per acquisition is an improvement.
func PeriodChange(current, previous Metric, field ChangeField) float64 {
	switch field {
	case FieldClicks:
		if previous.Clicks <= 0 {
			return 0
		}
		return float64(current.Clicks-previous.Clicks) / float64(previous.Clicks) * 100
	case FieldConversions:
		if previous.Conversions <= 0 {
			return 0
		}
		return float64(current.Conversions-previous.Conversions) / float64(previous.Conversions) * 100
	case FieldCTR:
		if previous.CTR <= 0 {
			return 0
		}
		return (current.CTR - previous.CTR) / previous.CTR * 100
	case FieldCPA:
		if previous.CPA <= 0 {
			return 0
		}
		return (previous.CPA - current.CPA) / previous.CPA * 100
	}
	return 0
}

// LatestChanges compares the last two rows of an ordered series. Fewer
// than two rows means no deltas to report.
func LatestChanges(metrics []Metric) Changes {
	if len(metrics) < 2 {
		return Changes{}
	}
	current := metrics[len(metrics)-1]
	previous := metrics[len(metrics)-2]
	return Changes{
		Clicks:      PeriodChange(current, previous, FieldClicks),
		Conversions: PeriodChange(current, previous, FieldConversions),
		CTR:         PeriodChange(current, previous, FieldCTR),
		CPA:         PeriodChange(current, previous, FieldCPA),
	}
}
