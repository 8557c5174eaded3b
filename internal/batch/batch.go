// Package batch evaluates many sequences through one shared cycle engine
// with a bounded worker pool. The engine serializes each cycle's
// read-rules → mutate-rules span, so workers never interleave partial
// table updates; the batch order of feedback application is whatever order
// the workers win the lock in.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"splicecert/internal/cycle"
	"splicecert/internal/logging"
	"splicecert/internal/score"
)

// Item is the outcome of one sequence in a batch run.
type Item struct {
	Index    int
	Sequence string
	Result   *score.Result
	Err      error
}

// Run evaluates every sequence with eng using at most workers concurrent
// cycles. Per-sequence failures land in the corresponding Item; Run itself
// fails only when the context is cancelled. Results come back in input
// order.
func Run(ctx context.Context, eng *cycle.Engine, sequences []string, workers int) ([]Item, error) {
	if workers < 1 {
		workers = 1
	}
	log := logging.New("batch")
	log.Info("batch start", "sequences", len(sequences), "workers", workers)

	items := make([]Item, len(sequences))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seq := range sequences {
		items[i] = Item{Index: i, Sequence: seq}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := eng.RunCycle(seq)
			items[i].Result = res
			items[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	log.Info("batch done", "sequences", len(sequences), "failed", failed)
	return items, nil
}
