// Package schema has configs, models and global variables for all parts of shiftlens.
package schema

// Status is the value of a single nurse×shift cell.
type Status int

// Cell values accepted in an assignment matrix.
const (
	Rests Status = 0 // nurse is off for the shift
	Works Status = 1 // nurse is scheduled for the shift
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Works:
		return "works"
	case Rests:
		return "rests"
	default:
		return "invalid"
	}
}

// Valid reports whether s is one of the two cell values.
func (s Status) Valid() bool {
	return s == Works || s == Rests
}

// MarshalText lets JSON output carry "works"/"rests" instead of 0/1.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ViewEntry is a single (shift label, status) pair of a nurse view.
type ViewEntry struct {
	Shift  string `json:"shift"`
	Status Status `json:"status"`
}

// NurseView is the filtered, ordered schedule of one nurse.
// WorkedCount and RestedCount are taken from the whole row regardless of Mode.
type NurseView struct {
	Nurse       string      `json:"nurse"`
	Index       int         `json:"index"`
	Mode        FilterMode  `json:"mode"`
	Entries     []ViewEntry `json:"entries"`
	WorkedCount int         `json:"worked_count"`
	RestedCount int         `json:"rested_count"`
}

// Extremum is the value reached by a min/max scan and every label reaching it.
type Extremum struct {
	Value  int      `json:"value"`
	Labels []string `json:"labels"`
}

// Recommendations bundles the two imbalance signals of a roster.
type Recommendations struct {
	CriticalShifts   Extremum `json:"critical_shifts"`   // shifts at minimum coverage
	OverloadedNurses Extremum `json:"overloaded_nurses"` // nurses at maximum workload
}

// Dimensions is the (nurses, shifts) size of a matrix.
type Dimensions struct {
	Nurses int `json:"nurses"`
	Shifts int `json:"shifts"`
}
