package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/huangsam/shiftlens/core/matrix"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/parquet"
	"github.com/huangsam/shiftlens/schema"
	"github.com/xuri/excelize/v2"
)

// sheetName is the sheet written by WriteMatrix for xlsx output.
const sheetName = "Solucions"

// WriteMatrix encodes m to path in a format Load can read back.
// CSV and xlsx hold the bare 0/1 grid, so explicit nurse and shift labels are dropped
// with a warning and come back positional on load. Parquet holds long-format cells with labels.
func WriteMatrix(m *matrix.Matrix, path string, format schema.SourceFormat) error {
	resolved := contract.ResolveSourceFormat(path, format)
	switch resolved {
	case schema.ParquetSource:
		cells := parquet.CellsFromGrid(m.Ints(), m.NurseLabels(), m.ShiftLabels())
		return parquet.WriteCellsParquet(cells, path)
	case schema.CSVSource, schema.XLSXSource:
		if err := droppedLabels(m, resolved); err != nil {
			contract.LogWarn("Converting "+path, err)
		}
		if resolved == schema.CSVSource {
			return writeCSV(m, path)
		}
		return writeXLSX(m, path)
	default:
		return fmt.Errorf("cannot infer output format of %q", path)
	}
}

// droppedLabels describes the labels a grid-only format cannot keep, or returns nil.
func droppedLabels(m *matrix.Matrix, format schema.SourceFormat) error {
	if format == schema.ParquetSource || !m.ExplicitLabels() {
		return nil
	}
	return fmt.Errorf("%s keeps only the 0/1 grid, nurse and shift labels are dropped", format)
}

func writeCSV(m *matrix.Matrix, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	for _, row := range m.Ints() {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.Itoa(v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(m *matrix.Matrix, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	for i, row := range m.Ints() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
