package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/shiftlens/schema"
)

// Flag label constants.
const (
	CriticalValue   = "Critical"   // shift at minimum coverage
	OverloadedValue = "Overloaded" // nurse at maximum workload
)

// Color variables for console output.
var (
	WorksColor      = color.New(color.FgGreen)              // WorksColor marks a scheduled cell.
	RestsColor      = color.New(color.Faint)                // RestsColor marks a cell the nurse is off.
	CriticalColor   = color.New(color.FgRed, color.Bold)    // CriticalColor represents standard danger.
	OverloadedColor = color.New(color.FgYellow, color.Bold) // OverloadedColor represents strong caution.
)

// GetStatusLabel returns the display label of a cell, colored when useColors is set.
func GetStatusLabel(s schema.Status, useColors bool) string {
	text := s.String()
	if !useColors {
		return text
	}
	switch s {
	case schema.Works:
		return WorksColor.Sprint(text)
	default:
		return RestsColor.Sprint(text)
	}
}

// GetFlagLabel returns the flag text for a row, or an empty string when not flagged.
func GetFlagLabel(flag string, flagged, useColors bool) string {
	if !flagged {
		return ""
	}
	if !useColors {
		return flag
	}
	switch flag {
	case CriticalValue:
		return CriticalColor.Sprint(flag)
	default:
		return OverloadedColor.Sprint(flag)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for matrix cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftlens_cache.db"
	}
	return filepath.Join(homeDir, ".shiftlens_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftlens_analysis.db"
	}
	return filepath.Join(homeDir, ".shiftlens_analysis.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis and one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
