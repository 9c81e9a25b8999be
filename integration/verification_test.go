//go:build integration

// Package integration contains integration tests for shiftlens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/csv"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatedGrid builds a deterministic nurses×shifts roster with uneven coverage.
func generatedGrid(nurses, shifts int) [][]int {
	grid := make([][]int, nurses)
	for i := range grid {
		grid[i] = make([]int, shifts)
		for j := range grid[i] {
			if (i*7+j*3)%5 < 2+i%2 {
				grid[i][j] = 1
			}
		}
	}
	return grid
}

// parseCSV reads CSV output into rows, dropping the header.
func parseCSV(t *testing.T, out string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records[1:]
}

// TestShiftlensCountsVerification runs coverage and workload and checks every count against the grid.
func TestShiftlensCountsVerification(t *testing.T) {
	grid := generatedGrid(12, 28)
	roster := writeRoster(t, grid)

	out, err := runShiftlens(t, "coverage", roster, "--output", "csv", "--cache-backend", "none")
	require.NoError(t, err)
	rows := parseCSV(t, out)
	require.Len(t, rows, 28)
	for j, row := range rows {
		want := 0
		for i := range grid {
			want += grid[i][j]
		}
		got, err := strconv.Atoi(row[2])
		require.NoError(t, err)
		assert.Equal(t, want, got, "coverage mismatch for %s", row[1])
	}

	out, err = runShiftlens(t, "workload", roster, "--output", "csv", "--cache-backend", "none")
	require.NoError(t, err)
	rows = parseCSV(t, out)
	require.Len(t, rows, 12)
	for i, row := range rows {
		want := 0
		for _, v := range grid[i] {
			want += v
		}
		got, err := strconv.Atoi(row[2])
		require.NoError(t, err)
		assert.Equal(t, want, got, "workload mismatch for %s", row[1])
	}
}

// TestShiftlensConvertRoundTrip converts a roster to parquet and reads the grid back.
func TestShiftlensConvertRoundTrip(t *testing.T) {
	grid := generatedGrid(5, 9)
	roster := writeRoster(t, grid)
	converted := filepath.Join(t.TempDir(), "roster.parquet")

	_, err := runShiftlens(t, "convert", roster, "--output-file", converted, "--cache-backend", "none")
	require.NoError(t, err)

	out, err := runShiftlens(t, "overview", converted, "--output", "csv", "--cache-backend", "none")
	require.NoError(t, err)
	rows := parseCSV(t, out)
	require.Len(t, rows, len(grid))
	for i, row := range rows {
		for j, cell := range row[1:] {
			assert.Equal(t, strconv.Itoa(grid[i][j]), cell, "cell %d,%d", i, j)
		}
	}
}
