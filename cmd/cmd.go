// Package cmd defines the command-line interface for shiftlens.
package cmd

import (
	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(nurseCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("format", string(schema.AutoSource), "Source format: auto or xlsx or csv or parquet")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from an xlsx source (default: first sheet)")
	rootCmd.PersistentFlags().Int("skip-rows", 0, "Number of leading header rows to ignore")
	rootCmd.PersistentFlags().Int("skip-cols", 0, "Number of leading label columns to ignore")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of nurseCmd to Viper
	nurseCmd.Flags().StringP("nurse", "n", "", "Nurse label or 1-based number")
	nurseCmd.Flags().StringP("filter", "f", string(schema.AllFilter), "Shifts to keep: all or working or resting")
	if err := viper.BindPFlags(nurseCmd.Flags()); err != nil {
		contract.LogFatal("Error binding nurse flags", err)
	}

	// coverage and workload share the rank key, so each binds it in rankedSetup
	coverageCmd.Flags().Bool("rank", false, "Order shifts from least to most covered")
	workloadCmd.Flags().Bool("rank", false, "Order nurses from most to least loaded")

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
