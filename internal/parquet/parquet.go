// Package parquet provides data structures and functions for reading and
// writing shiftlens data as Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/shiftlens/schema"
	"github.com/parquet-go/parquet-go"
)

// Cell is one nurse×shift assignment in long format.
// Nurse and Shift are 1-based positions, Status is 0 or 1.
type Cell struct {
	Nurse      int32  `parquet:"nurse,snappy"`
	Shift      int32  `parquet:"shift,snappy"`
	Status     int32  `parquet:"status,snappy"`
	NurseLabel string `parquet:"nurse_label,optional,snappy"`
	ShiftLabel string `parquet:"shift_label,optional,snappy"`
}

// CoverageRow is the Parquet form of schema.CoverageRow.
type CoverageRow struct {
	Rank     int32  `parquet:"rank,snappy"`
	Shift    string `parquet:"shift,snappy"`
	Nurses   int32  `parquet:"nurses,snappy"`
	Critical bool   `parquet:"critical,snappy"`
}

// WorkloadRow is the Parquet form of schema.WorkloadRow.
type WorkloadRow struct {
	Rank       int32  `parquet:"rank,snappy"`
	Nurse      string `parquet:"nurse,snappy"`
	Shifts     int32  `parquet:"shifts,snappy"`
	Overloaded bool   `parquet:"overloaded,snappy"`
}

// AnalysisRun represents a single shiftlens analysis run with metadata.
// This struct maps to the shiftlens_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// NurseCount is the number of matrix rows
	NurseCount int32 `parquet:"nurse_count,snappy"`

	// ShiftCount is the number of matrix columns
	ShiftCount int32 `parquet:"shift_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// EntityMetric represents the coverage of a shift or the workload of a nurse in one run.
// This struct maps to the shiftlens_entity_metrics database table.
type EntityMetric struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	EntityKind string `parquet:"entity_kind,snappy"`
	Label      string `parquet:"label,snappy"`
	Position   int32  `parquet:"position,snappy"`
	Value      int32  `parquet:"value,snappy"`
	Flagged    bool   `parquet:"flagged,snappy"`
}

// writeRows writes rows of any struct type to a new Parquet file at outputPath.
// The schema is derived from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteCellsParquet writes long-format assignment cells to a Parquet file.
func WriteCellsParquet(data []Cell, outputPath string) error {
	return writeRows(data, outputPath)
}

// ReadCells reads long-format assignment cells from an in-memory Parquet file.
func ReadCells(r io.ReaderAt, size int64) ([]Cell, error) {
	rows, err := parquet.Read[Cell](r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	return rows, nil
}

// WriteCoverageParquet writes the coverage table to a Parquet file.
func WriteCoverageParquet(data []CoverageRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteWorkloadParquet writes the workload table to a Parquet file.
func WriteWorkloadParquet(data []WorkloadRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteEntityMetricsParquet writes a slice of EntityMetric structs to a Parquet file.
func WriteEntityMetricsParquet(data []EntityMetric, outputPath string) error {
	return writeRows(data, outputPath)
}

// CellsFromGrid flattens a grid into long-format cells, row by row.
func CellsFromGrid(grid [][]int, nurseLabels, shiftLabels []string) []Cell {
	var cells []Cell
	for i, row := range grid {
		for j, v := range row {
			c := Cell{Nurse: int32(i + 1), Shift: int32(j + 1), Status: int32(v)}
			if i < len(nurseLabels) {
				c.NurseLabel = nurseLabels[i]
			}
			if j < len(shiftLabels) {
				c.ShiftLabel = shiftLabels[j]
			}
			cells = append(cells, c)
		}
	}
	return cells
}

// ConvertCoverageRows converts schema.CoverageRow to CoverageRow for Parquet export.
func ConvertCoverageRows(rows []schema.CoverageRow) []CoverageRow {
	result := make([]CoverageRow, len(rows))
	for i, r := range rows {
		result[i] = CoverageRow{
			Rank:     int32(r.Rank),
			Shift:    r.Shift,
			Nurses:   int32(r.Nurses),
			Critical: r.Critical,
		}
	}
	return result
}

// ConvertWorkloadRows converts schema.WorkloadRow to WorkloadRow for Parquet export.
func ConvertWorkloadRows(rows []schema.WorkloadRow) []WorkloadRow {
	result := make([]WorkloadRow, len(rows))
	for i, r := range rows {
		result[i] = WorkloadRow{
			Rank:       int32(r.Rank),
			Nurse:      r.Nurse,
			Shifts:     int32(r.Shifts),
			Overloaded: r.Overloaded,
		}
	}
	return result
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:    record.AnalysisID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			NurseCount:    record.NurseCount,
			ShiftCount:    record.ShiftCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertEntityMetricRecords converts schema.EntityMetricRecord to EntityMetric for Parquet export.
func ConvertEntityMetricRecords(records []schema.EntityMetricRecord) []EntityMetric {
	result := make([]EntityMetric, len(records))
	for i, record := range records {
		result[i] = EntityMetric{
			AnalysisID: record.AnalysisID,
			EntityKind: record.EntityKind,
			Label:      record.Label,
			Position:   record.Position,
			Value:      record.Value,
			Flagged:    record.Flagged,
		}
	}
	return result
}
