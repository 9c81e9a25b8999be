// Package algo has the threshold and ranking logic over aggregated counts.
package algo

import (
	"fmt"

	"github.com/huangsam/shiftlens/schema"
)

// CriticalShifts returns the minimum coverage and every shift label reaching it,
// in column order.
func CriticalShifts(coverage []int, labels []string) (schema.Extremum, error) {
	return extremum(coverage, labels, func(v, best int) bool { return v < best })
}

// OverloadedNurses returns the maximum workload and every nurse label reaching it,
// in row order.
func OverloadedNurses(workload []int, labels []string) (schema.Extremum, error) {
	return extremum(workload, labels, func(v, best int) bool { return v > best })
}

// extremum scans values twice: once for the best value, once to collect ties.
func extremum(values []int, labels []string, better func(v, best int) bool) (schema.Extremum, error) {
	if len(values) == 0 {
		return schema.Extremum{}, schema.ErrEmptyDataset
	}
	if len(values) != len(labels) {
		return schema.Extremum{}, fmt.Errorf("%w: %d values for %d labels", schema.ErrInvalidMatrix, len(values), len(labels))
	}

	best := values[0]
	for _, v := range values[1:] {
		if better(v, best) {
			best = v
		}
	}

	var members []string
	for i, v := range values {
		if v == best {
			members = append(members, labels[i])
		}
	}
	return schema.Extremum{Value: best, Labels: members}, nil
}
