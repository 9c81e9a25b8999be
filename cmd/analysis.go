package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/internal/iocache"
	"github.com/huangsam/shiftlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisBackend reads the tracking backend and its connection string from the config file,
// env and flags. An unset backend means tracking is off.
func analysisBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.DatabaseBackend(viper.GetString("analysis-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup opens only the analysis store. No source is read and no cache is opened.
func analysisSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := analysisBackend()
	if err != nil {
		return err
	}
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}
	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisMigrateSetup resolves the backend without opening the store,
// so migrations can run against an empty database.
func analysisMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := analysisBackend()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}
	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisCmd groups the run history commands.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the history of tracked roster runs",
	Long: `Manage the history of roster runs kept by the analysis store.

With --analysis-backend set, every roster command records:
- one run row with the command, the source and the roster size
- one metric row per shift with its coverage and whether it is critical
- one metric row per nurse with its workload and whether they are overloaded

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run counts and table sizes
  export  - Write runs and metrics to Parquet
  clear   - Remove all runs and metrics
  migrate - Move the schema to another version

Examples:
  # Track runs in the default SQLite file
  shiftlens coverage --analysis-backend sqlite
  shiftlens analysis status --analysis-backend sqlite`,
}

// analysisClearCmd drops every recorded run.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked runs and metrics",
	Long: `Delete every tracked run together with its coverage and workload metrics.

This cannot be undone. Export first if the history is still needed.

Examples:
  shiftlens analysis export --output-file backup
  shiftlens analysis clear`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd prints the store status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many runs are tracked and where",
	Long: `Print the backend, the connection state, the number of tracked runs,
the first and last run times and the row count of every table.

Examples:
  shiftlens analysis status
  SHIFTLENS_ANALYSIS_BACKEND=postgresql SHIFTLENS_ANALYSIS_DB_CONNECT="host=... dbname=..." shiftlens analysis status`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetAnalysisStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd writes the history to Parquet.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs and metrics to Parquet",
	Long: `Write the tracked history to two Parquet files next to --output-file:

  <output-file>.analysis_runs.parquet   one row per run
  <output-file>.entity_metrics.parquet  one row per nurse or shift of each run

Requires: --output-file

Examples:
  shiftlens analysis export --output-file history
  duckdb -c "SELECT label, avg(value) FROM read_parquet('history.entity_metrics.parquet') WHERE entity_kind = 'shift' GROUP BY label"`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd applies the embedded schema migrations.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply analysis schema migrations",
	Long: `Move the analysis store schema up or down between versions.

Without --target-version the schema is moved to the latest version.
Version 0 removes every table created by the migrations.

Examples:
  shiftlens analysis migrate --analysis-backend sqlite
  shiftlens analysis migrate --analysis-backend sqlite --target-version 1`,
	PreRunE: analysisMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
