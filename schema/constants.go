package schema

import (
	"fmt"
	"strings"
)

// Custom string types for type safety.
type (
	// FilterMode selects which assignments of a nurse view are kept.
	FilterMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceFormat represents the encoding of an assignment matrix source.
	SourceFormat string

	// EntityKind represents what a matrix axis holds.
	EntityKind string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All filter modes supported.
const (
	AllFilter     FilterMode = "all" // default
	WorkingFilter FilterMode = "working"
	RestingFilter FilterMode = "resting"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All source formats supported.
const (
	AutoSource    SourceFormat = "auto" // default, picked by file extension
	XLSXSource    SourceFormat = "xlsx"
	CSVSource     SourceFormat = "csv"
	ParquetSource SourceFormat = "parquet"
)

// Entity kinds of the two matrix axes.
const (
	NurseEntity EntityKind = "nurse"
	ShiftEntity EntityKind = "shift"
)

// Default label prefixes for rows and columns.
const (
	DefaultNurseKind = "Nurse"
	DefaultShiftKind = "Shift"
)

// DefaultSourcePath is the spreadsheet read when no source is given.
const DefaultSourcePath = "Solucions.xlsx"

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllFilterModes returns a list of all supported filter modes.
var AllFilterModes = []FilterMode{AllFilter, WorkingFilter, RestingFilter}

// ValidFilterModes lists all valid filter modes.
var ValidFilterModes = map[FilterMode]struct{}{
	AllFilter:     {},
	WorkingFilter: {},
	RestingFilter: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSourceFormats lists all valid source formats.
var ValidSourceFormats = map[SourceFormat]struct{}{
	AutoSource:    {},
	XLSXSource:    {},
	CSVSource:     {},
	ParquetSource: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ParseFilterMode converts user input into a FilterMode.
// An empty selection means AllFilter. Status names and the Spanish
// button labels are accepted as aliases.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todos":
		return AllFilter, nil
	case "working", "works", "trabaja":
		return WorkingFilter, nil
	case "resting", "rests", "descansa":
		return RestingFilter, nil
	default:
		return "", fmt.Errorf("%w: %q must be all, working or resting", ErrInvalidFilter, s)
	}
}

// Keeps reports whether a cell with the given status belongs in a view of mode f.
func (f FilterMode) Keeps(s Status) bool {
	switch f {
	case WorkingFilter:
		return s == Works
	case RestingFilter:
		return s == Rests
	default:
		return true
	}
}
