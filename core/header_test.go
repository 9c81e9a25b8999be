package core

import (
	"bytes"
	"testing"

	"github.com/huangsam/shiftlens/internal/contract"
	"github.com/huangsam/shiftlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestLogAnalysisHeader(t *testing.T) {
	dims := schema.Dimensions{Nurses: 12, Shifts: 28}

	tests := []struct {
		name     string
		cfg      contract.Config
		expected string
	}{
		{
			name:     "xlsx with default sheet",
			cfg:      contract.Config{SourcePath: "/data/Solucions.xlsx", SourceFormat: schema.XLSXSource, UseEmojis: true},
			expected: "🔎 Source: Solucions.xlsx (Sheet: first)\n📐 Grid: 12 nurses × 28 shifts\n",
		},
		{
			name:     "xlsx with named sheet",
			cfg:      contract.Config{SourcePath: "/data/Solucions.xlsx", SourceFormat: schema.XLSXSource, Sheet: "March", UseEmojis: true},
			expected: "🔎 Source: Solucions.xlsx (Sheet: March)\n📐 Grid: 12 nurses × 28 shifts\n",
		},
		{
			name:     "csv without emojis",
			cfg:      contract.Config{SourcePath: "/data/roster.csv", SourceFormat: schema.CSVSource},
			expected: "Source: roster.csv (Format: csv)\nGrid: 12 nurses x 28 shifts\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			LogAnalysisHeader(&buf, &tt.cfg, dims)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}
