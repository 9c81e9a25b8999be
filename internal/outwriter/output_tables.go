package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/parquet"
	"github.com/huangsam/shiftlens/schema"
)

// WriteCoverageRows outputs the coverage table, dispatching based on the output format configured.
func WriteCoverageRows(rows []schema.CoverageRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON coverage"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCoverage(w, rows)
		}, "Wrote CSV coverage"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetWithFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteCoverageParquet(parquet.ConvertCoverageRows(rows), path)
		}, "Wrote Parquet coverage"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoverageTable(w, rows, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteWorkloadRows outputs the workload table, dispatching based on the output format configured.
func WriteWorkloadRows(rows []schema.WorkloadRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON workload"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForWorkload(w, rows)
		}, "Wrote CSV workload"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetWithFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteWorkloadParquet(parquet.ConvertWorkloadRows(rows), path)
		}, "Wrote Parquet workload"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWorkloadTable(w, rows, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeCoverageTable prints the coverage rows with a bar per shift.
func writeCoverageTable(w io.Writer, rows []schema.CoverageRow, cfg *contract.Config, duration time.Duration) error {
	labelWidth := GetMaxTableLabelWidth(cfg)
	values := make([]int, len(rows))
	for i, r := range rows {
		values[i] = r.Nurses
	}
	bars := makeBars(values, GetMaxBarWidth(cfg, labelWidth))

	data := make([][]string, 0, len(rows))
	total := 0
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateLabel(r.Shift, labelWidth),
			strconv.Itoa(r.Nurses),
			bars[i],
			contract.GetFlagLabel(contract.CriticalValue, r.Critical, cfg.UseColors),
		})
		total += r.Nurses
	}
	if err := writeTable(w, []string{"Rank", "Shift", "Nurses", "Coverage", "Flag"}, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d shifts (total assignments: %d)\n", len(rows), total); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeWorkloadTable prints the workload rows with a bar per nurse.
func writeWorkloadTable(w io.Writer, rows []schema.WorkloadRow, cfg *contract.Config, duration time.Duration) error {
	labelWidth := GetMaxTableLabelWidth(cfg)
	values := make([]int, len(rows))
	for i, r := range rows {
		values[i] = r.Shifts
	}
	bars := makeBars(values, GetMaxBarWidth(cfg, labelWidth))

	data := make([][]string, 0, len(rows))
	total := 0
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateLabel(r.Nurse, labelWidth),
			strconv.Itoa(r.Shifts),
			bars[i],
			contract.GetFlagLabel(contract.OverloadedValue, r.Overloaded, cfg.UseColors),
		})
		total += r.Shifts
	}
	if err := writeTable(w, []string{"Rank", "Nurse", "Shifts", "Workload", "Flag"}, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d nurses (total assignments: %d)\n", len(rows), total); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeCSVResultsForCoverage writes the coverage rows in CSV format.
func writeCSVResultsForCoverage(w io.Writer, rows []schema.CoverageRow) error {
	return writeCSVWithHeader(w, []string{"rank", "shift", "nurses", "critical"}, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Shift,
				strconv.Itoa(r.Nurses),
				strconv.FormatBool(r.Critical),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSVResultsForWorkload writes the workload rows in CSV format.
func writeCSVResultsForWorkload(w io.Writer, rows []schema.WorkloadRow) error {
	return writeCSVWithHeader(w, []string{"rank", "nurse", "shifts", "overloaded"}, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Nurse,
				strconv.Itoa(r.Shifts),
				strconv.FormatBool(r.Overloaded),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// makeBars scales values against the largest one so that it spans width characters.
// A nonzero value always gets at least one character.
func makeBars(values []int, width int) []string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	bars := make([]string, len(values))
	if peak == 0 {
		return bars
	}
	for i, v := range values {
		n := v * width / peak
		if v > 0 && n == 0 {
			n = 1
		}
		bars[i] = strings.Repeat("█", n)
	}
	return bars
}

// writeFooter prints the timing line shared by every text output.
func writeFooter(w io.Writer, cfg *contract.Config, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}
