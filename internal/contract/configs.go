package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/shiftlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // show every row
	MaxResultLimit     = 1000
	MaxSkip            = 100
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// LabelsRawInput holds the row and column label prefixes from the YAML config file.
type LabelsRawInput struct {
	Nurse string `mapstructure:"nurse"`
	Shift string `mapstructure:"shift"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	SourcePath   string
	SourceFormat schema.SourceFormat
	Sheet        string
	SkipRows     int
	SkipCols     int
	NurseKind    string
	ShiftKind    string

	NurseRef    string // label or 1-based number given to --nurse
	Filter      schema.FilterMode
	ResultLimit int
	Rank        bool
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourcePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format            string `mapstructure:"format"`
	Sheet             string `mapstructure:"sheet"`
	SkipRows          int    `mapstructure:"skip-rows"`
	SkipCols          int    `mapstructure:"skip-cols"`
	Limit             int    `mapstructure:"limit"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from nurseCmd.Flags() ---
	Nurse  string `mapstructure:"nurse"`
	Filter string `mapstructure:"filter"`

	// --- Fields from coverageCmd / workloadCmd flags ---
	Rank bool `mapstructure:"rank"`

	// --- Label prefixes from config file ---
	Labels LabelsRawInput `mapstructure:"labels"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithSource creates a copy of the Config that reads from another source path.
func (c *Config) CloneWithSource(path string) *Config {
	clone := c.Clone()
	clone.SourcePath = path
	clone.SourceFormat = ResolveSourceFormat(path, schema.AutoSource)
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processLabels(cfg, input); err != nil {
		return err
	}
	if err := resolveSource(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateBackendConfigs validates cache and analysis backend configurations.
func ValidateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Cache and analysis cannot share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Rank = input.Rank
	cfg.Sheet = strings.TrimSpace(input.Sheet)
	cfg.NurseRef = strings.TrimSpace(input.Nurse)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Header stripping ---
	if input.SkipRows < 0 || input.SkipRows > MaxSkip {
		return fmt.Errorf("skip-rows must be between 0 and %d (received %d)", MaxSkip, input.SkipRows)
	}
	if input.SkipCols < 0 || input.SkipCols > MaxSkip {
		return fmt.Errorf("skip-cols must be between 0 and %d (received %d)", MaxSkip, input.SkipCols)
	}
	cfg.SkipRows = input.SkipRows
	cfg.SkipCols = input.SkipCols

	// --- 3. Filter Validation ---
	filter, err := schema.ParseFilterMode(input.Filter)
	if err != nil {
		return err
	}
	cfg.Filter = filter

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 5. Backend Validation ---
	return ValidateBackendConfigs(cfg, input)
}

// processLabels applies the label prefixes from the config file.
func processLabels(cfg *Config, input *ConfigRawInput) error {
	cfg.NurseKind = strings.TrimSpace(input.Labels.Nurse)
	if cfg.NurseKind == "" {
		cfg.NurseKind = schema.DefaultNurseKind
	}
	cfg.ShiftKind = strings.TrimSpace(input.Labels.Shift)
	if cfg.ShiftKind == "" {
		cfg.ShiftKind = schema.DefaultShiftKind
	}
	if cfg.NurseKind == cfg.ShiftKind {
		return fmt.Errorf("nurse and shift labels must differ (both are %q)", cfg.NurseKind)
	}
	return nil
}

// resolveSource resolves the source path and its format.
func resolveSource(cfg *Config, input *ConfigRawInput) error {
	path := input.SourcePathStr
	if path == "" {
		path = schema.DefaultSourcePath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("source %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %q is a directory", path)
	}
	cfg.SourcePath = filepath.Clean(absPath)

	requested := schema.SourceFormat(strings.ToLower(input.Format))
	if requested == "" {
		requested = schema.AutoSource
	}
	if _, ok := schema.ValidSourceFormats[requested]; !ok {
		return fmt.Errorf("invalid format '%s'. must be auto, xlsx, csv, parquet", input.Format)
	}
	cfg.SourceFormat = ResolveSourceFormat(cfg.SourcePath, requested)
	if cfg.SourceFormat == schema.AutoSource {
		return fmt.Errorf("cannot infer format of %q. use --format xlsx, csv or parquet", path)
	}
	return nil
}

// ResolveSourceFormat turns AutoSource into a concrete format using the file extension.
// Unknown extensions stay AutoSource.
func ResolveSourceFormat(path string, requested schema.SourceFormat) schema.SourceFormat {
	if requested != schema.AutoSource && requested != "" {
		return requested
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return schema.XLSXSource
	case ".csv", ".tsv":
		return schema.CSVSource
	case ".parquet":
		return schema.ParquetSource
	default:
		return schema.AutoSource
	}
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
