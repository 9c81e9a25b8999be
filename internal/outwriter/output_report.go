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

// Interpretation notes printed under the recommendations.
const (
	criticalNote   = "Shifts with low coverage: review them to avoid operational risk and overload."
	overloadedNote = "Nurses with the highest workload: redistribute shifts to improve balance and avoid fatigue."
)

// WriteRecommendationsResult outputs both imbalance signals, dispatching based on the output format configured.
func WriteRecommendationsResult(rec schema.Recommendations, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rec)
		}, "Wrote JSON recommendations"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRecommendations(w, rec)
		}, "Wrote CSV recommendations"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeRecommendationsBlock(w, rec, cfg); err != nil {
				return err
			}
			return writeFooter(w, cfg, duration)
		}, "Wrote recommendations")
	}
	return nil
}

// WriteReportResult outputs the whole report, dispatching based on the output format configured.
// Parquet output writes X.coverage.parquet and X.workload.parquet for an output file X.
func WriteReportResult(report schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON report"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForReport(w, report)
		}, "Wrote CSV report"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		prefix := strings.TrimSuffix(cfg.OutputFile, ".parquet")
		if err := writeParquetWithFile(prefix+".coverage.parquet", func(path string) error {
			return parquet.WriteCoverageParquet(parquet.ConvertCoverageRows(report.Coverage), path)
		}, "Wrote Parquet coverage"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		if err := writeParquetWithFile(prefix+".workload.parquet", func(path string) error {
			return parquet.WriteWorkloadParquet(parquet.ConvertWorkloadRows(report.Workload), path)
		}, "Wrote Parquet workload"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		}, "Wrote report")
	}
	return nil
}

// writeReportText prints the counts, both tables and the recommendations.
func writeReportText(w io.Writer, report schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Roster: %d nurses × %d shifts\n\n", report.Dimensions.Nurses, report.Dimensions.Shifts); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, sectionTitle(cfg, "👥", "Nurses per shift")); err != nil {
		return err
	}
	labelWidth := GetMaxTableLabelWidth(cfg)
	coverage := make([]int, len(report.Coverage))
	for i, r := range report.Coverage {
		coverage[i] = r.Nurses
	}
	bars := makeBars(coverage, GetMaxBarWidth(cfg, labelWidth))
	covData := make([][]string, 0, len(report.Coverage))
	for i, r := range report.Coverage {
		covData = append(covData, []string{
			contract.TruncateLabel(r.Shift, labelWidth),
			strconv.Itoa(r.Nurses),
			bars[i],
			contract.GetFlagLabel(contract.CriticalValue, r.Critical, cfg.UseColors),
		})
	}
	if err := writeTable(w, []string{"Shift", "Nurses", "Coverage", "Flag"}, covData); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\n"+sectionTitle(cfg, "👩‍⚕️", "Shifts per nurse")); err != nil {
		return err
	}
	workData := make([][]string, 0, len(report.Workload))
	for _, r := range report.Workload {
		workData = append(workData, []string{
			contract.TruncateLabel(r.Nurse, labelWidth),
			strconv.Itoa(r.Shifts),
			contract.GetFlagLabel(contract.OverloadedValue, r.Overloaded, cfg.UseColors),
		})
	}
	if err := writeTable(w, []string{"Nurse", "Shifts", "Flag"}, workData); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if report.Recommendations == nil {
		if _, err := fmt.Fprintln(w, "No recommendations for an empty roster."); err != nil {
			return err
		}
	} else if err := writeRecommendationsBlock(w, *report.Recommendations, cfg); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeRecommendationsBlock prints "N nurses in: ..." and "N shifts: ..." with the notes.
func writeRecommendationsBlock(w io.Writer, rec schema.Recommendations, cfg *contract.Config) error {
	critical := strings.Join(rec.CriticalShifts.Labels, ", ")
	overloaded := strings.Join(rec.OverloadedNurses.Labels, ", ")
	if cfg.UseColors {
		critical = contract.CriticalColor.Sprint(critical)
		overloaded = contract.OverloadedColor.Sprint(overloaded)
	}

	lines := []string{
		sectionTitle(cfg, "🔴", "Shifts with low coverage"),
		fmt.Sprintf("%d nurses in: %s", rec.CriticalShifts.Value, critical),
		"",
		sectionTitle(cfg, "🟡", "Nurses with the highest workload"),
		fmt.Sprintf("%d shifts: %s", rec.OverloadedNurses.Value, overloaded),
		"",
		"- " + criticalNote,
		"- " + overloadedNote,
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForRecommendations writes one row per flagged label.
func writeCSVResultsForRecommendations(w io.Writer, rec schema.Recommendations) error {
	return writeCSVWithHeader(w, []string{"kind", "label", "value"}, func(cw *csv.Writer) error {
		return writeRecommendationRecords(cw, rec)
	})
}

func writeRecommendationRecords(cw *csv.Writer, rec schema.Recommendations) error {
	for _, label := range rec.CriticalShifts.Labels {
		if err := cw.Write([]string{"critical_shift", label, strconv.Itoa(rec.CriticalShifts.Value)}); err != nil {
			return err
		}
	}
	for _, label := range rec.OverloadedNurses.Labels {
		if err := cw.Write([]string{"overloaded_nurse", label, strconv.Itoa(rec.OverloadedNurses.Value)}); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForReport writes coverage and workload rows in one long table.
func writeCSVResultsForReport(w io.Writer, report schema.ReportResult) error {
	header := []string{"kind", "rank", "label", "value", "flagged"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range report.Coverage {
			rec := []string{string(schema.ShiftEntity), strconv.Itoa(r.Rank), r.Shift, strconv.Itoa(r.Nurses), strconv.FormatBool(r.Critical)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		for _, r := range report.Workload {
			rec := []string{string(schema.NurseEntity), strconv.Itoa(r.Rank), r.Nurse, strconv.Itoa(r.Shifts), strconv.FormatBool(r.Overloaded)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// sectionTitle prefixes a title with an emoji when emojis are enabled.
func sectionTitle(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}
