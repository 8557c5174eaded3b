package format_test

import (
	"strings"
	"testing"

	"splicecert/internal/compose"
	"splicecert/internal/format"
)

func TestASCIIBasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Pattern", "Tags", "Penalty")
	tb.Row("ATCG", "Healthy", 0.5)
	tb.Row("TTTT", "Defect Marker", 5.0)
	out := tb.String()

	if !strings.Contains(out, "Pattern") {
		t.Errorf("expected header 'Pattern' in output:\n%s", out)
	}
	if !strings.Contains(out, "Defect Marker") {
		t.Errorf("expected 'Defect Marker' in output:\n%s", out)
	}
	// ASCII mode uses StyleLight box-drawing characters.
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdownBasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Run", "Score")
	tb.Row("1", "0.655")
	out := tb.String()

	if !strings.Contains(out, "| Run") {
		t.Errorf("expected markdown header with '| Run':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestFmtRegions(t *testing.T) {
	if got := format.FmtRegions(nil); got != "-" {
		t.Errorf("FmtRegions(nil) = %q, want -", got)
	}
	got := format.FmtRegions([]compose.Region{{Start: 0, End: 4}, {Start: 8, End: 12}})
	if got != "[0,4) [8,12)" {
		t.Errorf("FmtRegions = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-pattern", 10, "a-very-..."},
		{"abc", 2, "ab"},
	}
	for _, tc := range cases {
		if got := format.Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestFmtScore(t *testing.T) {
	if got := format.FmtScore(0.655); got != "0.655" {
		t.Errorf("FmtScore = %q", got)
	}
	if got := format.FmtPenalty(5); got != "5.00" {
		t.Errorf("FmtPenalty = %q", got)
	}
}
