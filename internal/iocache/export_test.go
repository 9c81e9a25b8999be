package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/shiftlens/internal/parquet"
	"github.com/huangsam/shiftlens/schema"
	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAnalysis(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	recordRun(t, store, testStart)

	prefix := filepath.Join(t.TempDir(), "history")
	require.NoError(t, ExportAnalysis(store, prefix))

	runs, err := pq.ReadFile[parquet.AnalysisRun](prefix + ".analysis_runs.parquet")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int32(3), runs[0].NurseCount)

	metrics, err := pq.ReadFile[parquet.EntityMetric](prefix + ".entity_metrics.parquet")
	require.NoError(t, err)
	assert.Len(t, metrics, 6)
}

func TestExportAnalysisErrors(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "history")

	assert.Error(t, ExportAnalysis(&MockAnalysisStore{}, ""))
	assert.Error(t, ExportAnalysis(nil, prefix))

	empty := &MockAnalysisStore{}
	empty.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true}, nil)
	err := ExportAnalysis(empty, prefix)
	assert.EqualError(t, err, "no analysis data found to export")

	broken := &MockAnalysisStore{}
	broken.On("GetStatus").Return(schema.AnalysisStatus{TotalRuns: 1}, nil)
	broken.On("GetAllAnalysisRuns").Return(nil, errors.New("boom"))
	assert.ErrorContains(t, ExportAnalysis(broken, prefix), "boom")
	broken.AssertExpectations(t)

	_, err = os.Stat(prefix + ".analysis_runs.parquet")
	assert.True(t, os.IsNotExist(err))
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	when := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend: "sqlite", Connected: true, TotalEntries: 2,
		LastEntryTime: when, OldestEntryTime: when, TableSizeBytes: 4096,
	})
	assert.Contains(t, buf.String(), "Total Entries: 2\n")
	assert.Contains(t, buf.String(), "Last Entry: 2026-03-01T08:00:00Z\n")
	assert.Contains(t, buf.String(), "Table Size: 4096 bytes\n")

	buf.Reset()
	PrintAnalysisStatus(&buf, schema.AnalysisStatus{
		Backend: "sqlite", Connected: true, TotalRuns: 1, LastRunID: 7,
		LastRunTime: when, OldestRunTime: when, TotalNurses: 3,
		TableSizes: map[string]int64{entityMetricsTable: 6, analysisRunsTable: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "Last Run ID: 7\n")
	assert.Contains(t, out, "Total Nurses Analyzed: 3\n")
	// Tables print in name order
	assert.Less(t,
		bytes.Index(buf.Bytes(), []byte(analysisRunsTable)),
		bytes.Index(buf.Bytes(), []byte(entityMetricsTable)))
}
