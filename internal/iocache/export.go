package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/parquet"
)

// ExecuteAnalysisExport writes the recorded runs and metrics of the global
// analysis store to outputFile.analysis_runs.parquet and outputFile.entity_metrics.parquet.
func ExecuteAnalysisExport(outputFile string) error {
	return ExportAnalysis(Manager.GetAnalysisStore(), outputFile)
}

// ExportAnalysis writes the contents of store as two Parquet files prefixed by outputFile.
func ExportAnalysis(store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not enabled. Set --analysis-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total entity records: %d\n", status.TableSizes[entityMetricsTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	entityMetrics, err := store.GetAllEntityMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve entity metrics: %w", err)
	}

	parquetRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), analysisRunsFile)

	parquetMetrics := parquet.ConvertEntityMetricRecords(entityMetrics)
	entityMetricsFile := outputFile + ".entity_metrics.parquet"
	if err := parquet.WriteEntityMetricsParquet(parquetMetrics, entityMetricsFile); err != nil {
		return fmt.Errorf("failed to write entity metrics: %w", err)
	}
	fmt.Printf("Exported %d entity records to: %s\n", len(parquetMetrics), entityMetricsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
