package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/parquet"
	"github.com/huangsam/shiftlens/schema"
)

// WriteOverviewResult outputs the whole grid, dispatching based on the output format configured.
func WriteOverviewResult(result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON overview"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForOverview(w, result)
		}, "Wrote CSV overview"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetWithFile(cfg.OutputFile, func(path string) error {
			cells := parquet.CellsFromGrid(gridInts(result.Grid), result.Nurses, result.Shifts)
			return parquet.WriteCellsParquet(cells, path)
		}, "Wrote Parquet overview"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeOverviewTable prints the grid as works/rests labels. Grids wider than
// the terminal are split into consecutive blocks of shifts.
func writeOverviewTable(w io.Writer, result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	labelWidth := 0
	for _, n := range result.Nurses {
		labelWidth = max(labelWidth, len(n))
	}
	cellWidth := len(schema.Works.String())
	for _, s := range result.Shifts {
		cellWidth = max(cellWidth, len(s))
	}
	perBlock := GetMaxGridColumns(cfg, labelWidth, cellWidth)

	for start := 0; start < len(result.Shifts); start += perBlock {
		end := min(start+perBlock, len(result.Shifts))
		headers := append([]string{""}, result.Shifts[start:end]...)

		data := make([][]string, 0, len(result.Nurses))
		for i, nurse := range result.Nurses {
			row := []string{nurse}
			for _, s := range result.Grid[i][start:end] {
				row = append(row, contract.GetStatusLabel(s, cfg.UseColors))
			}
			data = append(data, row)
		}
		if err := writeTable(w, headers, data); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d nurses across %d shifts\n", result.Dimensions.Nurses, result.Dimensions.Shifts); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeCSVResultsForOverview writes the grid as a labelled 0/1 CSV table.
func writeCSVResultsForOverview(w io.Writer, result schema.OverviewResult) error {
	header := append([]string{"nurse"}, result.Shifts...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, nurse := range result.Nurses {
			rec := make([]string, 0, len(result.Shifts)+1)
			rec = append(rec, nurse)
			for _, s := range result.Grid[i] {
				rec = append(rec, strconv.Itoa(int(s)))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func gridInts(grid [][]schema.Status) [][]int {
	out := make([][]int, len(grid))
	for i, row := range grid {
		out[i] = make([]int, len(row))
		for j, s := range row {
			out[i][j] = int(s)
		}
	}
	return out
}
