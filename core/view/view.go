// Package view builds the filtered schedule of a single nurse.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/schema"
)

// Build returns the assignments of nurse i kept by mode, in shift order.
// WorkedCount and RestedCount always describe the whole row.
func Build(m *matrix.Matrix, i int, mode schema.FilterMode) (schema.NurseView, error) {
	if _, ok := schema.ValidFilterModes[mode]; !ok {
		return schema.NurseView{}, fmt.Errorf("%w: %q", schema.ErrInvalidFilter, mode)
	}
	row, err := m.Row(i)
	if err != nil {
		return schema.NurseView{}, err
	}
	nurse, err := m.NurseLabel(i)
	if err != nil {
		return schema.NurseView{}, err
	}
	shifts := m.ShiftLabels()

	v := schema.NurseView{
		Nurse:   nurse,
		Index:   i,
		Mode:    mode,
		Entries: make([]schema.ViewEntry, 0, len(row)),
	}
	for j, s := range row {
		if s == schema.Works {
			v.WorkedCount++
		} else {
			v.RestedCount++
		}
		if mode.Keeps(s) {
			v.Entries = append(v.Entries, schema.ViewEntry{Shift: shifts[j], Status: s})
		}
	}
	return v, nil
}

// Resolve finds the row of a nurse reference: either an exact label
// ("Nurse 3") or a 1-based position ("3").
func Resolve(m *matrix.Matrix, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i, err := m.NurseIndex(ref); err == nil {
		return i, nil
	}
	pos, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: nurse %q", schema.ErrNotFound, ref)
	}
	n, _ := m.Dimensions()
	if pos < 1 || pos > n {
		return 0, fmt.Errorf("%w: nurse %d out of range [1, %d]", schema.ErrNotFound, pos, n)
	}
	return pos - 1, nil
}
