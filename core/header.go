package core

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
)

// LogAnalysisHeader prints the source and grid size ahead of text output.
func LogAnalysisHeader(w io.Writer, cfg *contract.Config, dims schema.Dimensions) {
	detail := "Format: " + string(cfg.SourceFormat)
	if cfg.SourceFormat == schema.XLSXSource {
		sheet := cfg.Sheet
		if sheet == "" {
			sheet = "first"
		}
		detail = "Sheet: " + sheet
	}
	source := filepath.Base(cfg.SourcePath)

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "🔎 Source: %s (%s)\n", source, detail)
		_, _ = fmt.Fprintf(w, "📐 Grid: %d nurses × %d shifts\n", dims.Nurses, dims.Shifts)
		return
	}
	_, _ = fmt.Fprintf(w, "Source: %s (%s)\n", source, detail)
	_, _ = fmt.Fprintf(w, "Grid: %d nurses x %d shifts\n", dims.Nurses, dims.Shifts)
}
