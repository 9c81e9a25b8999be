package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateLabel fuzzes the TruncateLabel function with random labels and widths.
func FuzzTruncateLabel(f *testing.F) {
	seeds := []struct {
		label string
		width int
	}{
		{"Nurse 1", 10},
		{"Shift 12", 4},
		{"", 0},
		{"Núria Puig Ferrer", 8},
		{"very long label for a night shift in ward B", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.label, seed.width)
	}

	f.Fuzz(func(t *testing.T, label string, width int) {
		if !utf8.ValidString(label) {
			return
		}
		out := TruncateLabel(label, width)
		if width > 3 && utf8.RuneCountInString(out) > width {
			t.Fatalf("TruncateLabel(%q, %d) = %q exceeds width", label, width, out)
		}
	})
}
