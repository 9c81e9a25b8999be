package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/iocache"
	"github.com/huangsam/shiftlens/internal/loader"
	"github.com/huangsam/shiftlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testConfig points at a CSV copy of exampleGrid and writes output to a temp file.
func testConfig(t *testing.T, output schema.OutputMode, outName string) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(src, []byte("1,0,1\n1,1,1\n0,0,1\n"), 0o644))
	return &contract.Config{
		SourcePath:   src,
		SourceFormat: schema.CSVSource,
		NurseKind:    schema.DefaultNurseKind,
		ShiftKind:    schema.DefaultShiftKind,
		Filter:       schema.AllFilter,
		Output:       output,
		OutputFile:   filepath.Join(dir, outName),
		CacheBackend: schema.NoneBackend,
	}
}

// untrackedManager has neither a matrix cache nor an analysis store.
func untrackedManager() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetMatrixStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(nil)
	return mgr
}

// trackedManager expects one complete run of the 3×3 roster under the given id.
func trackedManager(command string, id int64) (*iocache.MockCacheManager, *iocache.MockAnalysisStore) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.MatchedBy(func(p map[string]any) bool {
		return p["command"] == command
	})).Return(id, nil).Once()
	store.On("RecordEntityMetric", id, mock.Anything).Return(nil).Times(6)
	store.On("EndAnalysis", id, mock.Anything, 3, 3).Return(nil).Once()

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetMatrixStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)
	return mgr, store
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExecuteCoverage(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "coverage.csv")
	cfg.Rank = true
	mgr, store := trackedManager("coverage", 7)

	require.NoError(t, ExecuteCoverage(context.Background(), cfg, mgr))
	assert.Equal(t, "rank,shift,nurses,critical\n1,Shift 2,1,true\n2,Shift 1,2,false\n3,Shift 3,3,false\n", readFile(t, cfg.OutputFile))
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestExecuteWorkload(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "workload.csv")
	cfg.ResultLimit = 2
	mgr, store := trackedManager("workload", 3)

	require.NoError(t, ExecuteWorkload(context.Background(), cfg, mgr))
	assert.Equal(t, "rank,nurse,shifts,overloaded\n1,Nurse 1,2,false\n2,Nurse 2,3,true\n", readFile(t, cfg.OutputFile))
	store.AssertExpectations(t)
}

func TestExecuteNurse(t *testing.T) {
	t.Run("resting view", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "nurse.csv")
		cfg.NurseRef = "3"
		cfg.Filter = schema.RestingFilter
		mgr, store := trackedManager("nurse", 1)

		require.NoError(t, ExecuteNurse(context.Background(), cfg, mgr))
		assert.Equal(t, "nurse,shift,status\nNurse 3,Shift 1,rests\nNurse 3,Shift 2,rests\n", readFile(t, cfg.OutputFile))
		store.AssertExpectations(t)
	})

	t.Run("missing reference", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "nurse.csv")
		err := ExecuteNurse(context.Background(), cfg, untrackedManager())
		assert.EqualError(t, err, "--nurse is required")
	})

	t.Run("unknown nurse leaves the run open", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "nurse.csv")
		cfg.NurseRef = "Nurse 9"
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(2), nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetMatrixStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		err := ExecuteNurse(context.Background(), cfg, mgr)
		assert.ErrorIs(t, err, schema.ErrNotFound)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExecuteRecommend(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "rec.csv")
	mgr, store := trackedManager("recommend", 4)

	require.NoError(t, ExecuteRecommend(context.Background(), cfg, mgr))
	assert.Equal(t, "kind,label,value\ncritical_shift,Shift 2,1\noverloaded_nurse,Nurse 2,3\n", readFile(t, cfg.OutputFile))
	store.AssertExpectations(t)
}

func TestExecuteRecommendEmpty(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "rec.csv")
	require.NoError(t, os.WriteFile(cfg.SourcePath, nil, 0o644))

	err := ExecuteRecommend(context.Background(), cfg, untrackedManager())
	assert.ErrorIs(t, err, schema.ErrEmptyDataset)
}

func TestExecuteReport(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "report.json")
	mgr, store := trackedManager("report", 5)

	require.NoError(t, ExecuteReport(context.Background(), cfg, mgr))
	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, `"critical_shifts"`)
	assert.Contains(t, out, cfg.SourcePath)
	store.AssertExpectations(t)
}

func TestExecuteOverview(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "overview.csv")
	mgr, store := trackedManager("overview", 6)

	require.NoError(t, ExecuteOverview(context.Background(), cfg, mgr))
	assert.Equal(t, "nurse,Shift 1,Shift 2,Shift 3\nNurse 1,1,0,1\nNurse 2,1,1,1\nNurse 3,0,0,1\n", readFile(t, cfg.OutputFile))
	store.AssertExpectations(t)
}

func TestExecuteTrackingFailure(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "coverage.csv")
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(0), errors.New("database is locked"))
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetMatrixStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	// Tracking problems never fail the command
	require.NoError(t, ExecuteCoverage(context.Background(), cfg, mgr))
	store.AssertNotCalled(t, "RecordEntityMetric", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteLoadFailure(t *testing.T) {
	executors := map[string]ExecutorFunc{
		"overview":  ExecuteOverview,
		"coverage":  ExecuteCoverage,
		"workload":  ExecuteWorkload,
		"recommend": ExecuteRecommend,
		"report":    ExecuteReport,
		"convert":   ExecuteConvert,
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t, schema.CSVOut, "out.csv")
			cfg.SourcePath = filepath.Join(t.TempDir(), "missing.csv")
			err := exec(context.Background(), cfg, untrackedManager())
			assert.ErrorIs(t, err, schema.ErrLoadFailed)
		})
	}
}

func TestExecuteConvert(t *testing.T) {
	t.Run("to parquet and back", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "roster.parquet")
		require.NoError(t, ExecuteConvert(context.Background(), cfg, untrackedManager()))

		m, err := loader.Load(context.Background(), loader.Source{Path: cfg.OutputFile, Format: schema.ParquetSource})
		require.NoError(t, err)
		assert.Equal(t, exampleGrid, m.Ints())
	})

	t.Run("to xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "roster.xlsx")
		require.NoError(t, ExecuteConvert(context.Background(), cfg, untrackedManager()))

		m, err := loader.Load(context.Background(), loader.Source{Path: cfg.OutputFile, Format: schema.XLSXSource})
		require.NoError(t, err)
		assert.Equal(t, exampleGrid, m.Ints())
	})

	t.Run("missing output file", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "")
		cfg.OutputFile = ""
		assert.EqualError(t, ExecuteConvert(context.Background(), cfg, untrackedManager()), "--output-file is required")
	})

	t.Run("unknown extension", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "roster.txt")
		assert.ErrorContains(t, ExecuteConvert(context.Background(), cfg, untrackedManager()), "cannot infer output format")
	})
}
