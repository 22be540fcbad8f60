package domain

import m "docvet.dev/pkg/docvet/internal/model"

// Aggregator folds a stream of verdicts into a CoverageReport. Verdicts must
// be added in discovery order; the undocumented list preserves that order
// with no reordering or deduplication.
type Aggregator struct {
	report m.CoverageReport
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records one verdict.
func (a *Aggregator) Add(v m.DocVerdict) {
	a.report.TotalItems++

	if v.Documented {
		a.report.DocumentedItems++
		return
	}

	a.report.Undocumented = append(a.report.Undocumented, v.Site)
}

// Report returns the accumulated coverage report.
func (a *Aggregator) Report() m.CoverageReport {
	return a.report
}
