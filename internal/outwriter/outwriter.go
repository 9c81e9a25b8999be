// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteOverview prints the assignment grid using the configured output format.
func (ow *OutWriter) WriteOverview(result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	return WriteOverviewResult(result, cfg, duration)
}

// WriteCoverage prints the shift coverage table using the configured output format.
func (ow *OutWriter) WriteCoverage(rows []schema.CoverageRow, cfg *contract.Config, duration time.Duration) error {
	return WriteCoverageRows(rows, cfg, duration)
}

// WriteWorkload prints the nurse workload table using the configured output format.
func (ow *OutWriter) WriteWorkload(rows []schema.WorkloadRow, cfg *contract.Config, duration time.Duration) error {
	return WriteWorkloadRows(rows, cfg, duration)
}

// WriteNurseView prints the filtered schedule of one nurse using the configured output format.
func (ow *OutWriter) WriteNurseView(v schema.NurseView, cfg *contract.Config, duration time.Duration) error {
	return WriteNurseViewResult(v, cfg, duration)
}

// WriteRecommendations prints the critical shifts and overloaded nurses using the configured output format.
func (ow *OutWriter) WriteRecommendations(rec schema.Recommendations, cfg *contract.Config, duration time.Duration) error {
	return WriteRecommendationsResult(rec, cfg, duration)
}

// WriteReport prints every query of a roster using the configured output format.
func (ow *OutWriter) WriteReport(report schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResult(report, cfg, duration)
}
