package format

import (
	"fmt"
	"strings"

	"splicecert/internal/compose"
)

// FmtScore formats a score or health value with three decimals.
func FmtScore(v float64) string { return fmt.Sprintf("%.3f", v) }

// FmtPenalty formats a penalty/cost with two decimals.
func FmtPenalty(v float64) string { return fmt.Sprintf("%.2f", v) }

// FmtRegions renders regions as "[0,4) [8,12)"; "-" when empty.
func FmtRegions(regions []compose.Region) string {
	if len(regions) == 0 {
		return "-"
	}
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
