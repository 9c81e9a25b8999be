package schema

import "time"

// EntityMetric is the per-run value of one nurse or shift.
type EntityMetric struct {
	Kind     EntityKind // nurse or shift
	Label    string     // "Nurse 2", "Shift 3"
	Position int        // 0-based row or column
	Value    int        // workload for nurses, coverage for shifts
	Flagged  bool       // overloaded nurse or critical shift
}

// AnalysisRunRecord represents a row from the shiftlens_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	NurseCount    int32
	ShiftCount    int32
	ConfigParams  *string
}

// EntityMetricRecord represents a row from the shiftlens_entity_metrics table.
type EntityMetricRecord struct {
	AnalysisID int64
	EntityKind string
	Label      string
	Position   int32
	Value      int32
	Flagged    bool
}

// MatrixSnapshot is the cached form of a loaded matrix.
type MatrixSnapshot struct {
	Grid   [][]int  `json:"grid"`
	Nurses []string `json:"nurses"`
	Shifts []string `json:"shifts"`
}
