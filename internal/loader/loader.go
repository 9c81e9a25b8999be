// Package loader reads assignment matrices from spreadsheets, CSV and Parquet files.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/parquet"
	"github.com/huangsam/shiftlens/schema"
	"github.com/xuri/excelize/v2"
)

// Source describes where a matrix lives and how to strip its headers.
type Source struct {
	Path      string
	Format    schema.SourceFormat
	Sheet     string // xlsx only, first sheet when empty
	SkipRows  int    // leading header rows to drop
	SkipCols  int    // leading header columns to drop
	NurseKind string
	ShiftKind string
}

// SourceFromConfig builds a Source from the validated config.
func SourceFromConfig(cfg *contract.Config) Source {
	return Source{
		Path:      cfg.SourcePath,
		Format:    cfg.SourceFormat,
		Sheet:     cfg.Sheet,
		SkipRows:  cfg.SkipRows,
		SkipCols:  cfg.SkipCols,
		NurseKind: cfg.NurseKind,
		ShiftKind: cfg.ShiftKind,
	}
}

// Load reads the source and returns a validated matrix.
// Unreadable sources fail with schema.ErrLoadFailed and bad content with schema.ErrInvalidMatrix.
func Load(ctx context.Context, src Source) (*matrix.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrLoadFailed, err)
	}
	return decode(src, data)
}

// decode turns raw file bytes into a matrix according to the source format.
func decode(src Source, data []byte) (*matrix.Matrix, error) {
	switch contract.ResolveSourceFormat(src.Path, src.Format) {
	case schema.XLSXSource:
		records, err := readXLSX(data, src.Sheet)
		if err != nil {
			return nil, err
		}
		return fromRecords(records, src)
	case schema.CSVSource:
		records, err := readCSV(data, src.Path)
		if err != nil {
			return nil, err
		}
		return fromRecords(records, src)
	case schema.ParquetSource:
		return readParquet(data, src)
	default:
		return nil, fmt.Errorf("%w: unknown format for %s", schema.ErrLoadFailed, filepath.Base(src.Path))
	}
}

func readXLSX(data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrLoadFailed, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", schema.ErrLoadFailed)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", schema.ErrLoadFailed, sheet, err)
	}
	return rows, nil
}

func readCSV(data []byte, path string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1 // ragged rows are reported by matrix.New
	r.TrimLeadingSpace = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrInvalidMatrix, err)
	}
	return records, nil
}

// fromRecords strips header rows and columns, parses every cell and builds the matrix.
func fromRecords(records [][]string, src Source) (*matrix.Matrix, error) {
	records = trimTrailingEmpty(records)
	if src.SkipRows > len(records) {
		return nil, fmt.Errorf("%w: cannot skip %d rows of %d", schema.ErrInvalidMatrix, src.SkipRows, len(records))
	}
	records = records[src.SkipRows:]

	grid := make([][]int, len(records))
	for i, rec := range records {
		if src.SkipCols > len(rec) {
			return nil, fmt.Errorf("%w: row %d has %d cells, cannot skip %d", schema.ErrInvalidMatrix, i+1, len(rec), src.SkipCols)
		}
		rec = rec[src.SkipCols:]
		grid[i] = make([]int, len(rec))
		for j, raw := range rec {
			v, err := ParseCell(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d, %d): %w", schema.ErrInvalidMatrix, i+1, j+1, err)
			}
			grid[i][j] = v
		}
	}
	return matrix.New(grid, kinds(src))
}

// ParseCell parses a spreadsheet cell holding an integral number such as "1", "0" or "1.0".
// Range checks are left to matrix.New.
func ParseCell(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("blank cell")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int(f), nil
}

// trimTrailingEmpty drops blank rows at the end of a sheet.
func trimTrailingEmpty(records [][]string) [][]string {
	end := len(records)
	for end > 0 && isBlankRow(records[end-1]) {
		end--
	}
	return records[:end]
}

func isBlankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func kinds(src Source) matrix.Option {
	nurseKind, shiftKind := src.NurseKind, src.ShiftKind
	if nurseKind == "" {
		nurseKind = schema.DefaultNurseKind
	}
	if shiftKind == "" {
		shiftKind = schema.DefaultShiftKind
	}
	return matrix.WithKinds(nurseKind, shiftKind)
}

// readParquet builds a matrix from long-format cells. Every (nurse, shift)
// pair in the bounding box must appear exactly once.
func readParquet(data []byte, src Source) (*matrix.Matrix, error) {
	cells, err := parquet.ReadCells(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrLoadFailed, err)
	}
	return fromCells(cells, src)
}

func fromCells(cells []parquet.Cell, src Source) (*matrix.Matrix, error) {
	n, m := 0, 0
	for _, c := range cells {
		if c.Nurse < 1 || c.Shift < 1 {
			return nil, fmt.Errorf("%w: cell (%d, %d) has a non-positive index", schema.ErrInvalidMatrix, c.Nurse, c.Shift)
		}
		n = max(n, int(c.Nurse))
		m = max(m, int(c.Shift))
	}
	if len(cells) != n*m {
		return nil, fmt.Errorf("%w: %d cells for a %d×%d grid", schema.ErrInvalidMatrix, len(cells), n, m)
	}

	grid := make([][]int, n)
	seen := make([][]bool, n)
	for i := range grid {
		grid[i] = make([]int, m)
		seen[i] = make([]bool, m)
	}
	nurseLabels := make([]string, n)
	shiftLabels := make([]string, m)
	for _, c := range cells {
		i, j := int(c.Nurse)-1, int(c.Shift)-1
		if seen[i][j] {
			return nil, fmt.Errorf("%w: cell (%d, %d) appears twice", schema.ErrInvalidMatrix, c.Nurse, c.Shift)
		}
		seen[i][j] = true
		grid[i][j] = int(c.Status)
		if err := mergeLabel(nurseLabels, i, c.NurseLabel, "nurse"); err != nil {
			return nil, err
		}
		if err := mergeLabel(shiftLabels, j, c.ShiftLabel, "shift"); err != nil {
			return nil, err
		}
	}

	opts := []matrix.Option{kinds(src)}
	if complete(nurseLabels) {
		opts = append(opts, matrix.WithNurseLabels(nurseLabels))
	}
	if complete(shiftLabels) {
		opts = append(opts, matrix.WithShiftLabels(shiftLabels))
	}
	return matrix.New(grid, opts...)
}

func mergeLabel(labels []string, index int, label, axis string) error {
	if label == "" {
		return nil
	}
	if labels[index] != "" && labels[index] != label {
		return fmt.Errorf("%w: %s %d is labeled both %q and %q", schema.ErrInvalidMatrix, axis, index+1, labels[index], label)
	}
	labels[index] = label
	return nil
}

// complete reports whether every position has a label.
func complete(labels []string) bool {
	if len(labels) == 0 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}
