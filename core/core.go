// Package core has core logic for loading a roster and answering its queries.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/loader"
	"github.com/huangsam/shiftlens/internal/outwriter"
	"github.com/huangsam/shiftlens/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteOverview loads the roster and prints the whole grid.
func ExecuteOverview(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	roster, done, err := openRoster(ctx, cfg, mgr, "overview")
	if err != nil {
		return err
	}
	done()
	return outwriter.NewOutWriter().WriteOverview(roster.Overview(), cfg, time.Since(start))
}

// ExecuteNurse prints the schedule of the nurse named by cfg.NurseRef, kept by cfg.Filter.
func ExecuteNurse(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if cfg.NurseRef == "" {
		return errors.New("--nurse is required")
	}
	roster, done, err := openRoster(ctx, cfg, mgr, "nurse")
	if err != nil {
		return err
	}
	v, err := roster.NurseView(cfg.NurseRef, cfg.Filter)
	if err != nil {
		return err
	}
	done()
	return outwriter.NewOutWriter().WriteNurseView(v, cfg, time.Since(start))
}

// ExecuteCoverage prints the number of nurses working each shift.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	roster, done, err := openRoster(ctx, cfg, mgr, "coverage")
	if err != nil {
		return err
	}
	rows := roster.CoverageRows(cfg.Rank, cfg.ResultLimit)
	done()
	return outwriter.NewOutWriter().WriteCoverage(rows, cfg, time.Since(start))
}

// ExecuteWorkload prints the number of shifts worked by each nurse.
func ExecuteWorkload(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	roster, done, err := openRoster(ctx, cfg, mgr, "workload")
	if err != nil {
		return err
	}
	rows := roster.WorkloadRows(cfg.Rank, cfg.ResultLimit)
	done()
	return outwriter.NewOutWriter().WriteWorkload(rows, cfg, time.Since(start))
}

// ExecuteRecommend prints the critical shifts and the overloaded nurses.
// An empty roster has no recommendations and fails with ErrEmptyDataset.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	roster, done, err := openRoster(ctx, cfg, mgr, "recommend")
	if err != nil {
		return err
	}
	rec, err := roster.Recommendations()
	if err != nil {
		return err
	}
	done()
	return outwriter.NewOutWriter().WriteRecommendations(rec, cfg, time.Since(start))
}

// ExecuteReport prints coverage, workload and recommendations together.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	roster, done, err := openRoster(ctx, cfg, mgr, "report")
	if err != nil {
		return err
	}
	report, err := roster.Report(cfg.SourcePath)
	if err != nil {
		return err
	}
	done()
	return outwriter.NewOutWriter().WriteReport(report, cfg, time.Since(start))
}

// ExecuteConvert re-encodes the source matrix to cfg.OutputFile. The output
// format follows the file extension. Conversions are not tracked.
func ExecuteConvert(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required")
	}
	m, err := loader.CachedLoad(ctx, loader.SourceFromConfig(cfg), mgr)
	if err != nil {
		return err
	}
	if err := loader.WriteMatrix(m, cfg.OutputFile, schema.AutoSource); err != nil {
		return fmt.Errorf("error converting %s: %w", cfg.SourcePath, err)
	}
	n, s := m.Dimensions()
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d nurses × %d shifts to %s\n", n, s, cfg.OutputFile)
	return nil
}

// LoadRoster loads the configured source through the matrix cache of mgr.
// It neither prints nor tracks anything.
func LoadRoster(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*Roster, error) {
	m, err := loader.CachedLoad(ctx, loader.SourceFromConfig(cfg), mgr)
	if err != nil {
		return nil, err
	}
	return NewRoster(m), nil
}

// openRoster loads the configured source, prints the header for text output
// and opens a tracked run. The returned func closes the run once the query succeeded.
func openRoster(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, command string) (*Roster, func(), error) {
	tracker := beginTracking(mgr, cfg, command)
	roster, err := LoadRoster(ctx, cfg, mgr)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Output == schema.TextOut && !shouldSuppressHeader(ctx) {
		LogAnalysisHeader(os.Stdout, cfg, roster.Dimensions())
	}
	return roster, func() { tracker.finish(roster) }, nil
}
