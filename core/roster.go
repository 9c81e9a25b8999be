package core

import (
	"errors"

	"github.com/huangsam/shiftlens/core/agg"
	"github.com/huangsam/shiftlens/core/algo"
	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/core/view"
	"github.com/huangsam/shiftlens/schema"
)

// Roster answers every query about one assignment matrix.
// It is safe for concurrent use.
type Roster struct {
	agg *agg.Aggregator
}

// NewRoster wraps a validated matrix.
func NewRoster(m *matrix.Matrix) *Roster {
	return &Roster{agg: agg.NewAggregator(m)}
}

// Matrix returns the underlying matrix.
func (r *Roster) Matrix() *matrix.Matrix {
	return r.agg.Matrix()
}

// Dimensions returns the number of nurses and shifts.
func (r *Roster) Dimensions() schema.Dimensions {
	n, m := r.Matrix().Dimensions()
	return schema.Dimensions{Nurses: n, Shifts: m}
}

// ShiftCoverage returns the nurses working each shift, in column order.
func (r *Roster) ShiftCoverage() []int {
	return r.agg.ShiftCoverage()
}

// NurseWorkload returns the shifts worked by each nurse, in row order.
func (r *Roster) NurseWorkload() []int {
	return r.agg.NurseWorkload()
}

// CriticalShifts returns the lowest coverage and the shifts reaching it.
func (r *Roster) CriticalShifts() (schema.Extremum, error) {
	return algo.CriticalShifts(r.ShiftCoverage(), r.Matrix().ShiftLabels())
}

// OverloadedNurses returns the highest workload and the nurses reaching it.
func (r *Roster) OverloadedNurses() (schema.Extremum, error) {
	return algo.OverloadedNurses(r.NurseWorkload(), r.Matrix().NurseLabels())
}

// Recommendations returns both imbalance signals.
func (r *Roster) Recommendations() (schema.Recommendations, error) {
	m := r.Matrix()
	return algo.RecommendationsFrom(r.ShiftCoverage(), m.ShiftLabels(), r.NurseWorkload(), m.NurseLabels())
}

// NurseView returns the filtered schedule of the nurse named by ref,
// either a label or a 1-based number.
func (r *Roster) NurseView(ref string, mode schema.FilterMode) (schema.NurseView, error) {
	i, err := view.Resolve(r.Matrix(), ref)
	if err != nil {
		return schema.NurseView{}, err
	}
	return view.Build(r.Matrix(), i, mode)
}

// NurseViewAt returns the filtered schedule of the nurse in row i.
func (r *Roster) NurseViewAt(i int, mode schema.FilterMode) (schema.NurseView, error) {
	return view.Build(r.Matrix(), i, mode)
}

// Overview returns the whole grid with its labels.
func (r *Roster) Overview() schema.OverviewResult {
	m := r.Matrix()
	return schema.OverviewResult{
		Dimensions: r.Dimensions(),
		Nurses:     m.NurseLabels(),
		Shifts:     m.ShiftLabels(),
		Grid:       m.Grid(),
	}
}

// CoverageRows returns the coverage table, least covered first when rank is set,
// cut to limit rows when limit is positive. Critical shifts are flagged.
func (r *Roster) CoverageRows(rank bool, limit int) []schema.CoverageRow {
	coverage := r.ShiftCoverage()
	labels := r.Matrix().ShiftLabels()
	if len(coverage) == 0 {
		return []schema.CoverageRow{}
	}

	var ranked []algo.Ranked
	if rank {
		ranked = algo.RankShifts(coverage, labels, limit)
	} else {
		ranked = inOrder(coverage, labels, limit)
	}
	critical, _ := r.CriticalShifts() // coverage is non-empty
	names, values := algo.SplitRanked(ranked)
	return schema.EnrichCoverage(names, values, critical.Labels)
}

// WorkloadRows returns the workload table, busiest first when rank is set,
// cut to limit rows when limit is positive. Overloaded nurses are flagged.
func (r *Roster) WorkloadRows(rank bool, limit int) []schema.WorkloadRow {
	workload := r.NurseWorkload()
	labels := r.Matrix().NurseLabels()
	if len(workload) == 0 {
		return []schema.WorkloadRow{}
	}

	var ranked []algo.Ranked
	if rank {
		ranked = algo.RankNurses(workload, labels, limit)
	} else {
		ranked = inOrder(workload, labels, limit)
	}
	overloaded, _ := r.OverloadedNurses() // workload is non-empty
	names, values := algo.SplitRanked(ranked)
	return schema.EnrichWorkload(names, values, overloaded.Labels)
}

// Report gathers overview counts, both tables and the recommendations.
// Recommendations are omitted for an empty roster.
func (r *Roster) Report(source string) (schema.ReportResult, error) {
	report := schema.ReportResult{
		Source:     source,
		Dimensions: r.Dimensions(),
		Coverage:   r.CoverageRows(false, 0),
		Workload:   r.WorkloadRows(false, 0),
	}
	rec, err := r.Recommendations()
	switch {
	case err == nil:
		report.Recommendations = &rec
	case !errors.Is(err, schema.ErrEmptyDataset):
		return schema.ReportResult{}, err
	}
	return report, nil
}

// EntityMetrics returns one metric per shift and per nurse, flagged when the
// entity is critical or overloaded.
func (r *Roster) EntityMetrics() []schema.EntityMetric {
	var metrics []schema.EntityMetric
	for _, row := range r.CoverageRows(false, 0) {
		metrics = append(metrics, schema.EntityMetric{
			Kind:     schema.ShiftEntity,
			Label:    row.Shift,
			Position: row.Rank - 1,
			Value:    row.Nurses,
			Flagged:  row.Critical,
		})
	}
	for _, row := range r.WorkloadRows(false, 0) {
		metrics = append(metrics, schema.EntityMetric{
			Kind:     schema.NurseEntity,
			Label:    row.Nurse,
			Position: row.Rank - 1,
			Value:    row.Shifts,
			Flagged:  row.Overloaded,
		})
	}
	return metrics
}

// inOrder keeps the natural order and applies the limit.
func inOrder(values []int, labels []string, limit int) []algo.Ranked {
	ranked := make([]algo.Ranked, 0, len(values))
	for i, v := range values {
		if limit > 0 && i >= limit {
			break
		}
		ranked = append(ranked, algo.Ranked{Label: labels[i], Value: v, Position: i})
	}
	return ranked
}
