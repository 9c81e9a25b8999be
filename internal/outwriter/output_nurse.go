package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// errParquetUnsupported is returned for results that have no tabular Parquet form.
var errParquetUnsupported = errors.New("parquet output is only available for overview, coverage, workload and report")

// WriteNurseViewResult outputs one nurse's schedule, dispatching based on the output format configured.
func WriteNurseViewResult(v schema.NurseView, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, v)
		}, "Wrote JSON nurse view"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForNurseView(w, v)
		}, "Wrote CSV nurse view"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNurseViewTable(w, v, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeNurseViewTable prints the kept entries and the counters that match the filter.
func writeNurseViewTable(w io.Writer, v schema.NurseView, cfg *contract.Config, duration time.Duration) error {
	title := "Schedule of %s (filter: %s)\n"
	if cfg.UseEmojis {
		title = "👩‍⚕️ Schedule of %s (filter: %s)\n"
	}
	if _, err := fmt.Fprintf(w, title, v.Nurse, v.Mode); err != nil {
		return err
	}

	data := make([][]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		data = append(data, []string{e.Shift, contract.GetStatusLabel(e.Status, cfg.UseColors)})
	}
	if err := writeTable(w, []string{"Shift", "Status"}, data); err != nil {
		return err
	}

	for _, line := range nurseCounters(v) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return writeFooter(w, cfg, duration)
}

// nurseCounters returns the worked counter for working views, the rested
// counter for resting views and both otherwise.
func nurseCounters(v schema.NurseView) []string {
	worked := fmt.Sprintf("Shifts worked: %d", v.WorkedCount)
	rested := fmt.Sprintf("Shifts rested: %d", v.RestedCount)
	switch v.Mode {
	case schema.WorkingFilter:
		return []string{worked}
	case schema.RestingFilter:
		return []string{rested}
	default:
		return []string{worked, rested}
	}
}

// writeCSVResultsForNurseView writes the kept entries in CSV format.
func writeCSVResultsForNurseView(w io.Writer, v schema.NurseView) error {
	return writeCSVWithHeader(w, []string{"nurse", "shift", "status"}, func(cw *csv.Writer) error {
		for _, e := range v.Entries {
			if err := cw.Write([]string{v.Nurse, e.Shift, e.Status.String()}); err != nil {
				return err
			}
		}
		return nil
	})
}
