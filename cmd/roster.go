package cmd

import (
	"fmt"

	"github.com/huangsam/shiftlens/core"
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rankedSetup binds the --rank flag of the running command before the shared setup.
func rankedSetup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("rank", cmd.Flags().Lookup("rank")); err != nil {
		return fmt.Errorf("failed to bind rank flag: %w", err)
	}
	return sharedSetup(rootCtx, cmd, args)
}

// run executes one roster command and exits on failure.
func run(name string, exec core.ExecutorFunc) {
	if err := exec(rootCtx, cfg, cacheManager); err != nil {
		contract.LogFatal("Cannot run "+name, err)
	}
}

// overviewCmd prints the full assignment grid.
var overviewCmd = &cobra.Command{
	Use:   "overview [source]",
	Short: "Show the full nurse by shift assignment grid",
	Long: `Print every nurse and every shift of the roster as a grid.

A cell is marked when the nurse works that shift and left blank when they rest.
Wide rosters are split into blocks of shifts that fit the terminal.

The source defaults to Solucions.xlsx in the current directory.

Examples:
  # Show the default roster
  shiftlens overview

  # Show a CSV roster exported elsewhere
  shiftlens overview roster.csv

  # Dump the grid as 0/1 CSV
  shiftlens overview roster.xlsx --output csv --output-file grid.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run("overview", core.ExecuteOverview)
	},
}

// nurseCmd prints the schedule of one nurse.
var nurseCmd = &cobra.Command{
	Use:   "nurse [source]",
	Short: "Show the schedule of one nurse",
	Long: `Show which shifts one nurse works or rests.

The nurse is given by label (e.g. "Nurse 3") or by 1-based number (e.g. 3).
Use --filter to keep only the shifts worked or only the shifts rested.

Examples:
  # Every shift of the third nurse
  shiftlens nurse --nurse 3

  # Only the shifts a nurse works
  shiftlens nurse --nurse "Nurse 3" --filter working

  # Only the rest days, as JSON
  shiftlens nurse -n 3 -f resting --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run("nurse", core.ExecuteNurse)
	},
}

// coverageCmd prints the nurses per shift.
var coverageCmd = &cobra.Command{
	Use:   "coverage [source]",
	Short: "Count the nurses working each shift",
	Long: `Count how many nurses work each shift.

The least covered shifts are flagged as critical. Ties are all flagged.
Use --rank to list the least covered shifts first.

Examples:
  # Coverage in shift order
  shiftlens coverage

  # The five thinnest shifts
  shiftlens coverage --rank --limit 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: rankedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		run("coverage", core.ExecuteCoverage)
	},
}

// workloadCmd prints the shifts per nurse.
var workloadCmd = &cobra.Command{
	Use:   "workload [source]",
	Short: "Count the shifts worked by each nurse",
	Long: `Count how many shifts each nurse works.

The most loaded nurses are flagged as overloaded. Ties are all flagged.
Use --rank to list the most loaded nurses first.

Examples:
  # Workload in nurse order
  shiftlens workload

  # The three busiest nurses as CSV
  shiftlens workload --rank --limit 3 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: rankedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		run("workload", core.ExecuteWorkload)
	},
}

// recommendCmd prints the critical shifts and overloaded nurses.
var recommendCmd = &cobra.Command{
	Use:   "recommend [source]",
	Short: "Suggest which shifts need staff and which nurses need relief",
	Long: `List the shifts with the fewest nurses and the nurses with the most shifts.

These are the shifts where extra staff helps most and the nurses who
should be relieved first. An empty roster has no recommendations.

Examples:
  # Recommendations for the default roster
  shiftlens recommend

  # Recommendations as JSON for another tool
  shiftlens recommend roster.parquet --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run("recommend", core.ExecuteRecommend)
	},
}

// reportCmd prints coverage, workload and recommendations together.
var reportCmd = &cobra.Command{
	Use:   "report [source]",
	Short: "Print coverage, workload and recommendations in one report",
	Long: `Print the full roster report.

The report holds the nurses per shift, the shifts per nurse and the
recommendations. Parquet output writes one file per table next to the
given --output-file.

Examples:
  # Full report on the terminal
  shiftlens report

  # Full report as JSON
  shiftlens report --output json --output-file report.json

  # Coverage and workload tables for DuckDB
  shiftlens report --output parquet --output-file report.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run("report", core.ExecuteReport)
	},
}

// convertCmd re-encodes the source matrix.
var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Convert a roster between xlsx, csv and parquet",
	Long: `Re-encode the assignment grid of a roster into another format.

The output format follows the extension of --output-file. Header rows and
label columns dropped with --skip-rows and --skip-cols are not written.

Examples:
  # Spreadsheet to CSV
  shiftlens convert Solucions.xlsx --output-file roster.csv

  # CSV to Parquet
  shiftlens convert roster.csv --output-file roster.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run("convert", core.ExecuteConvert)
	},
}
