// Package cycle orchestrates one evaluation cycle: compose intervals,
// score the selection, record the certificate, and feed detected defects
// back into the rule table. Re-running after feedback is the caller's
// decision; the engine never recurses on its own.
package cycle

import (
	"fmt"
	"log/slog"
	"sync"

	"splicecert/internal/compose"
	"splicecert/internal/feedback"
	"splicecert/internal/logging"
	"splicecert/internal/rule"
	"splicecert/internal/score"
)

// Persister writes a certificate's artifact forms. Implementations must
// overwrite previous artifacts rather than append.
type Persister interface {
	Persist(cert *score.Certificate) error
}

// Engine runs evaluation cycles against one shared rule table. The table
// is a single mutable resource: each cycle holds the engine lock for its
// whole read-rules → mutate-rules span, so concurrent callers (batch mode)
// never observe a partially updated table.
type Engine struct {
	table     *rule.Table
	k         int
	persister Persister
	log       *slog.Logger

	mu      sync.Mutex
	history []*score.Certificate
}

// Option configures an Engine.
type Option func(*Engine)

// WithPersister attaches the certificate persistence collaborator.
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// New returns an engine evaluating sequences with the given table and
// window size.
func New(table *rule.Table, k int, opts ...Option) *Engine {
	e := &Engine{table: table, k: k, log: logging.New("cycle")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the engine's rule table.
func (e *Engine) Table() *rule.Table { return e.table }

// K returns the engine's window size.
func (e *Engine) K() int { return e.k }

// RunCycle evaluates one sequence: compose → score → persist → feedback.
// The certificate is appended to the in-memory history before persistence
// is attempted, so a failed write never loses the computed result; the
// write error is still reported to the caller alongside the result.
func (e *Engine) RunCycle(seq string) (*score.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	regions := compose.Compose(seq, e.table, e.k)
	res := score.Score(seq, regions, e.table, e.k)
	e.history = append(e.history, res.Certificate)

	e.log.Info("cycle scored",
		"regions", len(regions),
		"score", res.Score,
		"cost", res.Certificate.Cost,
		"error_detected", res.ErrorDetected)

	var persistErr error
	if e.persister != nil {
		persistErr = e.persister.Persist(res.Certificate)
	}

	if res.ErrorDetected {
		e.log.Info("defect pattern lost in clone, updating rule table",
			"recommendations", len(res.Certificate.Recommendations))
		if err := feedback.Apply(e.table, res.Certificate); err != nil {
			return res, fmt.Errorf("apply feedback: %w", err)
		}
	}

	if persistErr != nil {
		return res, fmt.Errorf("persist certificate: %w", persistErr)
	}
	return res, nil
}

// History returns the certificates of every cycle run so far, oldest
// first. The returned slice is a copy.
func (e *Engine) History() []*score.Certificate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*score.Certificate(nil), e.history...)
}
