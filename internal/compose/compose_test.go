package compose

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"splicecert/internal/rule"
)

func TestComposeSelectsHealthyRegion(t *testing.T) {
	tbl := rule.NewTable(
		rule.MustNew("ATCG", []string{"healthy"}, []string{"splice"}, 1, 0.5, nil),
		rule.MustNew("TTTT", []string{"error"}, []string{"exclude"}, 4, 5.0, nil),
	)
	got := Compose("ATCGTTTT", tbl, 4)
	want := []Region{{Start: 0, End: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeDegenerateInputs(t *testing.T) {
	tbl := rule.NewTable(rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil))
	tests := []struct {
		name string
		seq  string
		k    int
	}{
		{"empty sequence", "", 4},
		{"k larger than sequence", "ATC", 4},
		{"zero k", "ATCG", 0},
		{"negative k", "ATCG", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.seq, tbl, tt.k); len(got) != 0 {
				t.Errorf("Compose(%q, k=%d) = %v, want empty", tt.seq, tt.k, got)
			}
		})
	}

	if got := Compose("ATCGATCG", rule.NewTable(), 4); len(got) != 0 {
		t.Errorf("empty table: got %v, want empty", got)
	}
}

func TestComposeMergesAdjacentSameTagSet(t *testing.T) {
	// Overlapping windows of the same tag set collapse to one region
	// spanning the first start to the last end.
	tbl := rule.NewTable(rule.MustNew("AAAA", []string{"healthy"}, nil, 1, 0, nil))
	got := Compose("AAAAA", tbl, 4)
	want := []Region{{Start: 0, End: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeNonAdjacentSameTagSetSplits(t *testing.T) {
	// The same tag set interrupted by a different one forms separate
	// groups: grouping is positional, not semantic.
	tbl := rule.NewTable(
		rule.MustNew("AAAA", []string{"healthy"}, nil, 1, 0, nil),
		rule.MustNew("CCCC", []string{"neutral"}, nil, 2, 0, nil),
	)
	got := Compose("AAAACCCCAAAA", tbl, 4)
	want := []Region{{Start: 0, End: 4}, {Start: 8, End: 12}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeExcludeActionSkipsAnnotation(t *testing.T) {
	tbl := rule.NewTable(
		rule.MustNew("TTTT", []string{"healthy"}, []string{"exclude"}, 1, 0, nil),
	)
	if got := Compose("TTTT", tbl, 4); len(got) != 0 {
		t.Errorf("exclude-action rule produced regions: %v", got)
	}
}

func TestComposeIgnoresBounds(t *testing.T) {
	// Bounds gate whole-sequence matching, not interval composition: a rule
	// whose bounds exclude the region length still drives selection here.
	tbl := rule.NewTable(
		rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0, &rule.Bounds{Min: 10, Max: 20}),
	)
	got := Compose("ATCG", tbl, 4)
	want := []Region{{Start: 0, End: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bounds leaked into composition (-want +got):\n%s", diff)
	}
}

func TestComposeRegexPatterns(t *testing.T) {
	// Matching is regexp search inside the window, not string equality.
	tbl := rule.NewTable(
		rule.MustNew("T{3}", []string{"healthy"}, nil, 1, 0, nil),
	)
	got := Compose("ATTTG", tbl, 4)
	// Windows "ATTT" and "TTTG" both contain TTT and share a tag set.
	want := []Region{{Start: 0, End: 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("regex compose mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeOrderedNonOverlapping(t *testing.T) {
	tbl := rule.NewTable(
		rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil),
		rule.MustNew("CGTA", []string{"healthy", "long_hair"}, nil, 2, 1.0, nil),
		rule.MustNew("GCTA", []string{"risky"}, nil, 3, 2.0, nil),
	)
	got := Compose("ATCGCGTATTTTATCG", tbl, 4)
	last := 0
	for _, r := range got {
		if r.Start < last {
			t.Errorf("region %v overlaps or regresses (last end %d)", r, last)
		}
		if r.End <= r.Start {
			t.Errorf("degenerate region %v", r)
		}
		last = r.End
	}
}
