// Package matrix holds the validated nurse×shift assignment grid.
package matrix

import (
	"fmt"
	"strings"

	"github.com/huangsam/shiftlens/schema"
)

// Matrix is an immutable n×m grid of assignments with a label per row and column.
// Rows are nurses and columns are shifts.
type Matrix struct {
	cells       [][]schema.Status
	nurseLabels []string
	shiftLabels []string
	nurseIndex  map[string]int
	shiftIndex  map[string]int
	explicit    bool
}

type options struct {
	nurseLabels []string
	shiftLabels []string
	nurseKind   string
	shiftKind   string
}

// Option customizes how New labels the matrix.
type Option func(*options)

// WithNurseLabels sets explicit row labels. The count must equal the row count.
func WithNurseLabels(labels []string) Option {
	return func(o *options) { o.nurseLabels = labels }
}

// WithShiftLabels sets explicit column labels. The count must equal the column count.
// With a zero-row grid these labels also fix the column count.
func WithShiftLabels(labels []string) Option {
	return func(o *options) { o.shiftLabels = labels }
}

// WithKinds sets the prefixes of positional labels ("Nurse 1", "Shift 1" by default).
func WithKinds(nurseKind, shiftKind string) Option {
	return func(o *options) {
		o.nurseKind = nurseKind
		o.shiftKind = shiftKind
	}
}

// Label renders the positional label of a 0-based index, e.g. Label("Shift", 1) = "Shift 2".
func Label(kind string, index int) string {
	return fmt.Sprintf("%s %d", kind, index+1)
}

// New validates grid and returns a Matrix owning a copy of it.
// Every row must have the same length and every cell must be 0 or 1.
func New(grid [][]int, opts ...Option) (*Matrix, error) {
	o := options{nurseKind: schema.DefaultNurseKind, shiftKind: schema.DefaultShiftKind}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(o.nurseKind) == "" || strings.TrimSpace(o.shiftKind) == "" {
		return nil, fmt.Errorf("%w: label kinds must not be empty", schema.ErrInvalidMatrix)
	}

	n := len(grid)
	m := 0
	switch {
	case n > 0:
		m = len(grid[0])
	case o.shiftLabels != nil:
		m = len(o.shiftLabels)
	}

	cells := make([][]schema.Status, n)
	for i, row := range grid {
		if len(row) != m {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", schema.ErrInvalidMatrix, i+1, len(row), m)
		}
		cells[i] = make([]schema.Status, m)
		for j, v := range row {
			s := schema.Status(v)
			if !s.Valid() {
				return nil, fmt.Errorf("%w: cell (%d, %d) is %d, expected 0 or 1", schema.ErrInvalidMatrix, i+1, j+1, v)
			}
			cells[i][j] = s
		}
	}

	nurseLabels, nurseIndex, err := buildLabels(o.nurseLabels, o.nurseKind, n, "nurse")
	if err != nil {
		return nil, err
	}
	shiftLabels, shiftIndex, err := buildLabels(o.shiftLabels, o.shiftKind, m, "shift")
	if err != nil {
		return nil, err
	}

	return &Matrix{
		cells:       cells,
		nurseLabels: nurseLabels,
		shiftLabels: shiftLabels,
		nurseIndex:  nurseIndex,
		shiftIndex:  shiftIndex,
		explicit:    o.nurseLabels != nil || o.shiftLabels != nil,
	}, nil
}

// buildLabels copies explicit labels or generates positional ones, and indexes them.
func buildLabels(explicit []string, kind string, count int, axis string) ([]string, map[string]int, error) {
	labels := make([]string, count)
	if explicit != nil {
		if len(explicit) != count {
			return nil, nil, fmt.Errorf("%w: %d %s labels for %d %ss", schema.ErrInvalidMatrix, len(explicit), axis, count, axis)
		}
		copy(labels, explicit)
	} else {
		for i := range labels {
			labels[i] = Label(kind, i)
		}
	}

	index := make(map[string]int, count)
	for i, l := range labels {
		if strings.TrimSpace(l) == "" {
			return nil, nil, fmt.Errorf("%w: %s label %d is empty", schema.ErrInvalidMatrix, axis, i+1)
		}
		if _, dup := index[l]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate %s label %q", schema.ErrInvalidMatrix, axis, l)
		}
		index[l] = i
	}
	return labels, index, nil
}

// ExplicitLabels reports whether either axis was built from given labels instead of positional ones.
func (m *Matrix) ExplicitLabels() bool {
	return m.explicit
}

// Dimensions returns the number of nurses and shifts.
func (m *Matrix) Dimensions() (int, int) {
	return len(m.nurseLabels), len(m.shiftLabels)
}

// Cell returns the status of nurse i at shift j.
func (m *Matrix) Cell(i, j int) (schema.Status, error) {
	if err := m.checkNurse(i); err != nil {
		return 0, err
	}
	if err := m.checkShift(j); err != nil {
		return 0, err
	}
	return m.cells[i][j], nil
}

// Row returns a copy of the assignments of nurse i in shift order.
func (m *Matrix) Row(i int) ([]schema.Status, error) {
	if err := m.checkNurse(i); err != nil {
		return nil, err
	}
	row := make([]schema.Status, len(m.cells[i]))
	copy(row, m.cells[i])
	return row, nil
}

// Column returns a copy of the assignments of shift j in nurse order.
func (m *Matrix) Column(j int) ([]schema.Status, error) {
	if err := m.checkShift(j); err != nil {
		return nil, err
	}
	col := make([]schema.Status, len(m.cells))
	for i, row := range m.cells {
		col[i] = row[j]
	}
	return col, nil
}

// NurseLabel returns the label of row i.
func (m *Matrix) NurseLabel(i int) (string, error) {
	if err := m.checkNurse(i); err != nil {
		return "", err
	}
	return m.nurseLabels[i], nil
}

// ShiftLabel returns the label of column j.
func (m *Matrix) ShiftLabel(j int) (string, error) {
	if err := m.checkShift(j); err != nil {
		return "", err
	}
	return m.shiftLabels[j], nil
}

// NurseIndex returns the row of a nurse label.
func (m *Matrix) NurseIndex(label string) (int, error) {
	i, ok := m.nurseIndex[label]
	if !ok {
		return 0, fmt.Errorf("%w: nurse %q", schema.ErrNotFound, label)
	}
	return i, nil
}

// ShiftIndex returns the column of a shift label.
func (m *Matrix) ShiftIndex(label string) (int, error) {
	j, ok := m.shiftIndex[label]
	if !ok {
		return 0, fmt.Errorf("%w: shift %q", schema.ErrNotFound, label)
	}
	return j, nil
}

// NurseLabels returns a copy of the row labels.
func (m *Matrix) NurseLabels() []string {
	out := make([]string, len(m.nurseLabels))
	copy(out, m.nurseLabels)
	return out
}

// ShiftLabels returns a copy of the column labels.
func (m *Matrix) ShiftLabels() []string {
	out := make([]string, len(m.shiftLabels))
	copy(out, m.shiftLabels)
	return out
}

// Grid returns a deep copy of the cells.
func (m *Matrix) Grid() [][]schema.Status {
	out := make([][]schema.Status, len(m.cells))
	for i, row := range m.cells {
		out[i] = make([]schema.Status, len(row))
		copy(out[i], row)
	}
	return out
}

// Ints returns a deep copy of the cells as 0/1 integers, the form New accepts.
func (m *Matrix) Ints() [][]int {
	out := make([][]int, len(m.cells))
	for i, row := range m.cells {
		out[i] = make([]int, len(row))
		for j, s := range row {
			out[i][j] = int(s)
		}
	}
	return out
}

func (m *Matrix) checkNurse(i int) error {
	if i < 0 || i >= len(m.nurseLabels) {
		return fmt.Errorf("%w: nurse index %d out of range [0, %d)", schema.ErrNotFound, i, len(m.nurseLabels))
	}
	return nil
}

func (m *Matrix) checkShift(j int) error {
	if j < 0 || j >= len(m.shiftLabels) {
		return fmt.Errorf("%w: shift index %d out of range [0, %d)", schema.ErrNotFound, j, len(m.shiftLabels))
	}
	return nil
}
