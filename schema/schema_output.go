package schema

// CoverageRow is one shift of the coverage table.
type CoverageRow struct {
	Rank     int    `json:"rank"`
	Shift    string `json:"shift"`
	Nurses   int    `json:"nurses"`
	Critical bool   `json:"critical"`
}

// WorkloadRow is one nurse of the workload table.
type WorkloadRow struct {
	Rank       int    `json:"rank"`
	Nurse      string `json:"nurse"`
	Shifts     int    `json:"shifts"`
	Overloaded bool   `json:"overloaded"`
}

// OverviewResult is the full grid with its labels, for display.
type OverviewResult struct {
	Dimensions Dimensions `json:"dimensions"`
	Nurses     []string   `json:"nurses"`
	Shifts     []string   `json:"shifts"`
	Grid       [][]Status `json:"grid"`
}

// ReportResult gathers every query of a roster into one render model.
type ReportResult struct {
	Source          string           `json:"source"`
	Dimensions      Dimensions       `json:"dimensions"`
	Coverage        []CoverageRow    `json:"coverage"`
	Workload        []WorkloadRow    `json:"workload"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
}

// EnrichCoverage pairs coverage values with their labels, ranks them in the
// given order and flags the members of critical.
func EnrichCoverage(labels []string, coverage []int, critical []string) []CoverageRow {
	flagged := toSet(critical)
	output := make([]CoverageRow, len(coverage))
	for i, c := range coverage {
		_, isCritical := flagged[labels[i]]
		output[i] = CoverageRow{
			Rank:     i + 1,
			Shift:    labels[i],
			Nurses:   c,
			Critical: isCritical,
		}
	}
	return output
}

// EnrichWorkload pairs workload values with their labels, ranks them in the
// given order and flags the members of overloaded.
func EnrichWorkload(labels []string, workload []int, overloaded []string) []WorkloadRow {
	flagged := toSet(overloaded)
	output := make([]WorkloadRow, len(workload))
	for i, w := range workload {
		_, isOverloaded := flagged[labels[i]]
		output[i] = WorkloadRow{
			Rank:       i + 1,
			Nurse:      labels[i],
			Shifts:     w,
			Overloaded: isOverloaded,
		}
	}
	return output
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
