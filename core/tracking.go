package core

import (
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
)

// runTracker records one analysis run in the analysis store, if one is configured.
// Tracking failures are logged and never fail the command.
type runTracker struct {
	store contract.AnalysisStore
	id    int64
}

// beginTracking opens a run with the parameters that shaped it.
func beginTracking(mgr contract.CacheManager, cfg *contract.Config, command string) *runTracker {
	t := &runTracker{}
	if mgr == nil {
		return t
	}
	t.store = mgr.GetAnalysisStore()
	if t.store == nil {
		return t
	}

	configParams := map[string]any{
		"command":      command,
		"source":       cfg.SourcePath,
		"format":       string(cfg.SourceFormat),
		"sheet":        cfg.Sheet,
		"skip_rows":    cfg.SkipRows,
		"skip_cols":    cfg.SkipCols,
		"filter":       string(cfg.Filter),
		"rank":         cfg.Rank,
		"result_limit": cfg.ResultLimit,
	}
	id, err := t.store.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		t.store = nil
		return t
	}
	t.id = id
	return t
}

// finish stores one metric per shift and nurse and closes the run.
func (t *runTracker) finish(r *Roster) {
	if t.store == nil || t.id <= 0 {
		return
	}
	for _, metric := range r.EntityMetrics() {
		if err := t.store.RecordEntityMetric(t.id, metric); err != nil {
			contract.LogWarn("Failed to record entity metric", err)
			break
		}
	}
	dims := r.Dimensions()
	if err := t.store.EndAnalysis(t.id, time.Now(), dims.Nurses, dims.Shifts); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
