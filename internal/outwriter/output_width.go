package outwriter

import (
	"os"

	"github.com/huangsam/shiftlens/internal/contract"
	"golang.org/x/term"
)

// Bounds of the bar column in coverage and workload tables.
const (
	minBarWidth = 5
	maxBarWidth = 40
)

// getTerminalWidth returns the width override, the detected terminal width,
// or 80 when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxTableLabelWidth calculates the maximum width for nurse and shift labels
// in table output based on terminal width.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	// Rank + Count + Flag + Bar with borders/padding
	available := getTerminalWidth(cfg) - 35 - minBarWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}

// GetMaxBarWidth calculates how many characters the longest bar may take.
func GetMaxBarWidth(cfg *contract.Config, labelWidth int) int {
	available := getTerminalWidth(cfg) - 35 - labelWidth
	if available < minBarWidth {
		return minBarWidth
	}
	if available > maxBarWidth {
		return maxBarWidth
	}
	return available
}

// GetMaxGridColumns calculates how many shift columns fit beside the nurse
// label in the overview grid. At least one column is always shown.
func GetMaxGridColumns(cfg *contract.Config, labelWidth, cellWidth int) int {
	available := getTerminalWidth(cfg) - labelWidth - 4
	cols := available / (cellWidth + 3)
	if cols < 1 {
		return 1
	}
	return cols
}
