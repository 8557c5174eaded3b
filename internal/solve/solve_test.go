package solve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"splicecert/internal/rule"
)

func solver() *Solver {
	tbl := rule.NewTable(
		rule.MustNew("TTTT", nil, []string{"trim:4"}, 2, 5.0, nil),
		rule.MustNew("GCTA", nil, []string{"reverse"}, 1, 2.0, nil),
	)
	return New(rule.NewEngine(tbl))
}

func TestSolve(t *testing.T) {
	got := solver().Solve([]string{"ATCGTTTT", "GCTA", "AAAA"})
	want := []Solution{
		{Input: "ATCGTTTT", Sequence: "ATCG", Penalty: 5.0},
		{Input: "GCTA", Sequence: "ATCG", Penalty: 2.0},
		{Input: "AAAA", Sequence: "AAAA", Penalty: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimal(t *testing.T) {
	if got := solver().Optimal([]string{"ATCGTTTT", "GCTA", "AAAA"}); got != "AAAA" {
		t.Errorf("Optimal = %q, want AAAA (zero penalty)", got)
	}
}

func TestOptimalEmpty(t *testing.T) {
	if got := solver().Optimal(nil); got != "" {
		t.Errorf("Optimal(nil) = %q, want empty", got)
	}
}

func TestOptimalTieKeepsFirst(t *testing.T) {
	tbl := rule.NewTable(rule.MustNew("T", nil, []string{"complement"}, 1, 1.0, nil))
	s := New(rule.NewEngine(tbl))
	if got := s.Optimal([]string{"TT", "TA"}); got != "AA" {
		t.Errorf("Optimal = %q, want AA (first of the tie)", got)
	}
}
