// Package agg has aggregation logic for assignment matrices.
package agg

import (
	"sync"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/schema"
)

// ShiftCoverage returns the number of nurses working each shift, in column order.
// The result is empty when the matrix has no nurses or no shifts.
func ShiftCoverage(m *matrix.Matrix) []int {
	n, cols := m.Dimensions()
	if n == 0 || cols == 0 {
		return []int{}
	}
	grid := m.Grid()
	coverage := make([]int, cols)
	for _, row := range grid {
		for j, s := range row {
			if s == schema.Works {
				coverage[j]++
			}
		}
	}
	return coverage
}

// NurseWorkload returns the number of shifts each nurse works, in row order.
// The result is empty when the matrix has no nurses or no shifts.
func NurseWorkload(m *matrix.Matrix) []int {
	n, cols := m.Dimensions()
	if n == 0 || cols == 0 {
		return []int{}
	}
	grid := m.Grid()
	workload := make([]int, n)
	for i, row := range grid {
		for _, s := range row {
			if s == schema.Works {
				workload[i]++
			}
		}
	}
	return workload
}

// TotalAssignments returns the number of cells set to works.
// It equals both sum(ShiftCoverage) and sum(NurseWorkload).
func TotalAssignments(m *matrix.Matrix) int {
	total := 0
	for _, w := range NurseWorkload(m) {
		total += w
	}
	return total
}

// Aggregator computes the aggregates of one matrix once and serves copies.
// A Matrix never changes, so an Aggregator never needs invalidation.
type Aggregator struct {
	m        *matrix.Matrix
	once     sync.Once
	coverage []int
	workload []int
}

// NewAggregator returns an Aggregator bound to m.
func NewAggregator(m *matrix.Matrix) *Aggregator {
	return &Aggregator{m: m}
}

func (a *Aggregator) compute() {
	a.once.Do(func() {
		a.coverage = ShiftCoverage(a.m)
		a.workload = NurseWorkload(a.m)
	})
}

// Matrix returns the matrix the aggregates belong to.
func (a *Aggregator) Matrix() *matrix.Matrix {
	return a.m
}

// ShiftCoverage returns a copy of the memoized coverage.
func (a *Aggregator) ShiftCoverage() []int {
	a.compute()
	return clone(a.coverage)
}

// NurseWorkload returns a copy of the memoized workload.
func (a *Aggregator) NurseWorkload() []int {
	a.compute()
	return clone(a.workload)
}

func clone(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}
