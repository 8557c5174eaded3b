// Package solve applies the rule engine across candidate sequences and
// picks the lowest-penalty outcome.
package solve

import (
	"splicecert/internal/rule"
)

// Solution is the outcome of applying the rule engine to one candidate.
type Solution struct {
	Input    string  `json:"input"`
	Sequence string  `json:"sequence"`
	Penalty  float64 `json:"penalty"`
}

// Solver evaluates candidate sequences against one rule engine.
type Solver struct {
	engine *rule.Engine
}

// New returns a solver over the given engine.
func New(engine *rule.Engine) *Solver { return &Solver{engine: engine} }

// Solve applies all matching rules to each candidate, returning the
// modified sequence and accrued penalty per candidate, in input order.
func (s *Solver) Solve(candidates []string) []Solution {
	out := make([]Solution, 0, len(candidates))
	for _, seq := range candidates {
		modified, penalty := s.engine.ApplyRules(seq)
		out = append(out, Solution{Input: seq, Sequence: modified, Penalty: penalty})
	}
	return out
}

// Optimal returns the modified sequence with the lowest penalty, or ""
// when there are no candidates. Ties keep the earliest candidate.
func (s *Solver) Optimal(candidates []string) string {
	solutions := s.Solve(candidates)
	if len(solutions) == 0 {
		return ""
	}
	best := solutions[0]
	for _, sol := range solutions[1:] {
		if sol.Penalty < best.Penalty {
			best = sol
		}
	}
	return best.Sequence
}
