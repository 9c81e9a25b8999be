package algo

import (
	"sort"

	"github.com/huangsam/shiftlens/schema"
)

// Ranked is a label with its count and original position.
type Ranked struct {
	Label    string
	Value    int
	Position int
}

// RankShifts sorts shifts by coverage in ascending order, so the least covered
// come first, and returns the top 'limit' entries. Ties keep column order.
// A limit of zero or less returns every shift.
func RankShifts(coverage []int, labels []string, limit int) []Ranked {
	ranked := toRanked(coverage, labels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value < ranked[j].Value
	})
	return truncate(ranked, limit)
}

// RankNurses sorts nurses by workload in descending order, so the busiest
// come first, and returns the top 'limit' entries. Ties keep row order.
// A limit of zero or less returns every nurse.
func RankNurses(workload []int, labels []string, limit int) []Ranked {
	ranked := toRanked(workload, labels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return truncate(ranked, limit)
}

// SplitRanked returns the labels and values of ranked entries as parallel slices.
func SplitRanked(ranked []Ranked) ([]string, []int) {
	labels := make([]string, len(ranked))
	values := make([]int, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Label
		values[i] = r.Value
	}
	return labels, values
}

// RecommendationsFrom combines both thresholds into one result.
func RecommendationsFrom(coverage []int, shiftLabels []string, workload []int, nurseLabels []string) (schema.Recommendations, error) {
	critical, err := CriticalShifts(coverage, shiftLabels)
	if err != nil {
		return schema.Recommendations{}, err
	}
	overloaded, err := OverloadedNurses(workload, nurseLabels)
	if err != nil {
		return schema.Recommendations{}, err
	}
	return schema.Recommendations{CriticalShifts: critical, OverloadedNurses: overloaded}, nil
}

func toRanked(values []int, labels []string) []Ranked {
	n := min(len(values), len(labels))
	ranked := make([]Ranked, n)
	for i := range n {
		ranked[i] = Ranked{Label: labels[i], Value: values[i], Position: i}
	}
	return ranked
}

func truncate(ranked []Ranked, limit int) []Ranked {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
