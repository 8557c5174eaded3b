package batch

import (
	"context"
	"strings"
	"testing"

	"splicecert/internal/cycle"
	"splicecert/internal/rule"
)

func TestRunEvaluatesAllSequences(t *testing.T) {
	tbl := rule.NewTable(
		rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil),
	)
	eng := cycle.New(tbl, 4)

	var sequences []string
	for i := 0; i < 20; i++ {
		sequences = append(sequences, strings.Repeat("ATCG", i%4+1))
	}

	items, err := Run(context.Background(), eng, sequences, 4)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != len(sequences) {
		t.Fatalf("got %d items, want %d", len(items), len(sequences))
	}
	for i, it := range items {
		if it.Err != nil {
			t.Errorf("item %d: %v", i, it.Err)
		}
		if it.Index != i || it.Sequence != sequences[i] {
			t.Errorf("item %d out of order: %+v", i, it)
		}
		if it.Result == nil || it.Result.Certificate == nil {
			t.Errorf("item %d has no result", i)
		}
	}
	if got := len(eng.History()); got != len(sequences) {
		t.Errorf("history has %d certificates, want %d", got, len(sequences))
	}
}

func TestRunFeedbackIsSerialized(t *testing.T) {
	// Every sequence contains the defect pattern, so every cycle mutates
	// the table. With cycles serialized by the engine lock, the penalty
	// ends exactly at base + n*delta: no lost updates.
	tbl := rule.NewTable(
		rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil),
		rule.MustNew("TTTT", []string{"error"}, []string{"exclude"}, 4, 5.0, nil),
	)
	eng := cycle.New(tbl, 4)

	const n = 16
	sequences := make([]string, n)
	for i := range sequences {
		sequences[i] = "ATCGTTTT"
	}

	if _, err := Run(context.Background(), eng, sequences, 8); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var tttt *rule.Rule
	for _, r := range tbl.Rules() {
		if r.Pattern == "TTTT" {
			tttt = r
		}
	}
	if want := 5.0 + 2.0*n; tttt.Penalty != want {
		t.Errorf("penalty = %v, want %v (one delta per cycle)", tttt.Penalty, want)
	}
	if want := 4 + n; tttt.Priority != want {
		t.Errorf("priority = %d, want %d", tttt.Priority, want)
	}
}

func TestRunCancelledContext(t *testing.T) {
	tbl := rule.NewTable(rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil))
	eng := cycle.New(tbl, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, eng, []string{"ATCG", "ATCG"}, 2); err == nil {
		t.Error("Run on a cancelled context returned nil error")
	}
}

func TestRunWorkerFloor(t *testing.T) {
	tbl := rule.NewTable(rule.MustNew("ATCG", []string{"healthy"}, nil, 1, 0.5, nil))
	eng := cycle.New(tbl, 4)
	items, err := Run(context.Background(), eng, []string{"ATCG"}, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != 1 || items[0].Err != nil {
		t.Errorf("items = %+v", items)
	}
}
