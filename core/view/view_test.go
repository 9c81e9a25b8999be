package view

import (
	"testing"

	"github.com/huangsam/shiftlens/core/agg"
	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func example(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New([][]int{{1, 0, 1}, {1, 1, 1}, {0, 0, 1}})
	require.NoError(t, err)
	return m
}

func TestBuild(t *testing.T) {
	m := example(t)

	tests := []struct {
		name    string
		nurse   int
		mode    schema.FilterMode
		entries []schema.ViewEntry
	}{
		{
			name:  "working",
			nurse: 0,
			mode:  schema.WorkingFilter,
			entries: []schema.ViewEntry{
				{Shift: "Shift 1", Status: schema.Works},
				{Shift: "Shift 3", Status: schema.Works},
			},
		},
		{
			name:  "resting",
			nurse: 0,
			mode:  schema.RestingFilter,
			entries: []schema.ViewEntry{
				{Shift: "Shift 2", Status: schema.Rests},
			},
		},
		{
			name:  "all",
			nurse: 2,
			mode:  schema.AllFilter,
			entries: []schema.ViewEntry{
				{Shift: "Shift 1", Status: schema.Rests},
				{Shift: "Shift 2", Status: schema.Rests},
				{Shift: "Shift 3", Status: schema.Works},
			},
		},
		{
			name:    "resting with no rest",
			nurse:   1,
			mode:    schema.RestingFilter,
			entries: []schema.ViewEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Build(m, tt.nurse, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.entries, v.Entries)
			assert.Equal(t, tt.mode, v.Mode)
			assert.Equal(t, tt.nurse, v.Index)
		})
	}
}

func TestBuildCountersIgnoreMode(t *testing.T) {
	m := example(t)
	workload := agg.NurseWorkload(m)
	_, shifts := m.Dimensions()

	for i := range workload {
		for _, mode := range schema.AllFilterModes {
			v, err := Build(m, i, mode)
			require.NoError(t, err)
			assert.Equal(t, workload[i], v.WorkedCount)
			assert.Equal(t, shifts-workload[i], v.RestedCount)

			switch mode {
			case schema.AllFilter:
				assert.Len(t, v.Entries, shifts)
			case schema.WorkingFilter:
				assert.Len(t, v.Entries, workload[i])
			case schema.RestingFilter:
				assert.Len(t, v.Entries, shifts-workload[i])
			}
		}
	}
}

func TestBuildModeIsFilteredAll(t *testing.T) {
	m, err := matrix.New([][]int{{1, 0, 1, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}, {0, 1, 1, 0}})
	require.NoError(t, err)
	n, _ := m.Dimensions()

	for i := range n {
		all, err := Build(m, i, schema.AllFilter)
		require.NoError(t, err)

		for _, mode := range schema.AllFilterModes {
			filtered := make([]schema.ViewEntry, 0, len(all.Entries))
			for _, e := range all.Entries {
				if mode.Keeps(e.Status) {
					filtered = append(filtered, e)
				}
			}

			v, err := Build(m, i, mode)
			require.NoError(t, err)
			assert.Equal(t, filtered, v.Entries, "nurse %d mode %s", i, mode)
		}
	}
}

func TestBuildAllZero(t *testing.T) {
	m, err := matrix.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	v, err := Build(m, 1, schema.WorkingFilter)
	require.NoError(t, err)
	assert.Empty(t, v.Entries)
	assert.Zero(t, v.WorkedCount)
	assert.Equal(t, 2, v.RestedCount)
	assert.Equal(t, "Nurse 2", v.Nurse)
}

func TestBuildErrors(t *testing.T) {
	m := example(t)

	_, err := Build(m, 3, schema.AllFilter)
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = Build(m, -1, schema.AllFilter)
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = Build(m, 0, schema.FilterMode("sleeping"))
	assert.ErrorIs(t, err, schema.ErrInvalidFilter)
}

func TestResolve(t *testing.T) {
	m := example(t)

	tests := []struct {
		ref     string
		index   int
		wantErr bool
	}{
		{"Nurse 1", 0, false},
		{" Nurse 3 ", 2, false},
		{"2", 1, false},
		{"3", 2, false},
		{"0", 0, true},
		{"4", 0, true},
		{"Nurse 4", 0, true},
		{"nurse 1", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			i, err := Resolve(m, tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.index, i)
		})
	}
}

func TestResolvePrefersLabel(t *testing.T) {
	m, err := matrix.New([][]int{{1}, {0}, {1}}, matrix.WithNurseLabels([]string{"3", "1", "2"}))
	require.NoError(t, err)

	i, err := Resolve(m, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, i, "an exact label wins over a position")
}
