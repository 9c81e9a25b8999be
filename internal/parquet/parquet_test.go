package parquet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/shiftlens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertColumns(t *testing.T, model any, expected []string) {
	t.Helper()
	s := parquet.SchemaOf(model)
	require.NotNil(t, s)
	for _, colName := range expected {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestStructTags(t *testing.T) {
	assertColumns(t, new(Cell), []string{"nurse", "shift", "status", "nurse_label", "shift_label"})
	assertColumns(t, new(CoverageRow), []string{"rank", "shift", "nurses", "critical"})
	assertColumns(t, new(WorkloadRow), []string{"rank", "nurse", "shifts", "overloaded"})
	assertColumns(t, new(AnalysisRun), []string{
		"analysis_id", "start_time", "end_time", "run_duration_ms", "nurse_count", "shift_count", "config_params",
	})
	assertColumns(t, new(EntityMetric), []string{
		"analysis_id", "entity_kind", "label", "position", "value", "flagged",
	})
}

func TestCellsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "cells.parquet")
	grid := [][]int{{1, 0, 1}, {1, 1, 1}, {0, 0, 1}}
	cells := CellsFromGrid(grid, []string{"Nurse 1", "Nurse 2", "Nurse 3"}, []string{"Shift 1", "Shift 2", "Shift 3"})
	require.Len(t, cells, 9)
	assert.Equal(t, Cell{Nurse: 1, Shift: 2, Status: 0, NurseLabel: "Nurse 1", ShiftLabel: "Shift 2"}, cells[1])

	require.NoError(t, WriteCellsParquet(cells, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	read, err := ReadCells(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, cells, read)
}

func TestReadCellsGarbage(t *testing.T) {
	data := []byte("nurse,shift,status\n1,1,1\n")
	_, err := ReadCells(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestWriteTables(t *testing.T) {
	dir := t.TempDir()

	coverage := ConvertCoverageRows([]schema.CoverageRow{
		{Rank: 1, Shift: "Shift 2", Nurses: 1, Critical: true},
		{Rank: 2, Shift: "Shift 1", Nurses: 2},
	})
	require.NoError(t, WriteCoverageParquet(coverage, filepath.Join(dir, "coverage.parquet")))
	readCoverage, err := parquet.ReadFile[CoverageRow](filepath.Join(dir, "coverage.parquet"))
	require.NoError(t, err)
	assert.Equal(t, coverage, readCoverage)

	workload := ConvertWorkloadRows([]schema.WorkloadRow{
		{Rank: 1, Nurse: "Nurse 2", Shifts: 3, Overloaded: true},
	})
	require.NoError(t, WriteWorkloadParquet(workload, filepath.Join(dir, "workload.parquet")))
	readWorkload, err := parquet.ReadFile[WorkloadRow](filepath.Join(dir, "workload.parquet"))
	require.NoError(t, err)
	assert.Equal(t, workload, readWorkload)
}

func TestAnalysisExportRows(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	duration := int32(2000)
	params := `{"source":"Solucions.xlsx"}`

	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{
		{AnalysisID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration, NurseCount: 3, ShiftCount: 3, ConfigParams: &params},
		{AnalysisID: 2, StartTime: start.Add(time.Hour), NurseCount: 2, ShiftCount: 2},
	})
	require.Len(t, runs, 2)
	assert.Nil(t, runs[1].EndTime)
	require.NoError(t, WriteAnalysisRunsParquet(runs, filepath.Join(dir, "runs.parquet")))

	metrics := ConvertEntityMetricRecords([]schema.EntityMetricRecord{
		{AnalysisID: 1, EntityKind: "shift", Label: "Shift 2", Position: 1, Value: 1, Flagged: true},
		{AnalysisID: 1, EntityKind: "nurse", Label: "Nurse 2", Position: 1, Value: 3, Flagged: true},
	})
	require.NoError(t, WriteEntityMetricsParquet(metrics, filepath.Join(dir, "metrics.parquet")))

	readMetrics, err := parquet.ReadFile[EntityMetric](filepath.Join(dir, "metrics.parquet"))
	require.NoError(t, err)
	assert.Equal(t, metrics, readMetrics)
}

func TestWriteToMissingDirectory(t *testing.T) {
	err := WriteCellsParquet([]Cell{{Nurse: 1, Shift: 1}}, filepath.Join(t.TempDir(), "nope", "cells.parquet"))
	assert.Error(t, err)
}
