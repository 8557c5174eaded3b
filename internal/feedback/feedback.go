// Package feedback mutates the rule table as directed by a certificate's
// recommendations, closing the evaluate → score → adapt loop. It performs
// no matching and no scoring.
package feedback

import (
	"fmt"

	"splicecert/internal/logging"
	"splicecert/internal/rule"
	"splicecert/internal/score"
)

// Apply executes every recommendation of cert against table and re-sorts
// it. Rules are located by pattern-string equality; when several rules
// share a pattern, all of them are updated. A pattern no longer present in
// the table is skipped silently: the table may have changed since the
// certificate was generated. Penalty deltas are additive and deliberately
// not idempotent — applying the same certificate twice doubles the delta.
// An unknown recommendation kind is an error.
func Apply(table *rule.Table, cert *score.Certificate) error {
	log := logging.New("feedback")
	for _, rec := range cert.Recommendations {
		switch rec.Kind {
		case score.RecIncreasePenalty:
			for _, r := range table.Rules() {
				if r.Pattern != rec.Pattern {
					continue
				}
				r.Penalty += rec.Delta
				log.Info("penalty increased", "pattern", r.Pattern, "delta", rec.Delta, "penalty", r.Penalty)
			}
		case score.RecDeprioritize:
			for _, r := range table.Rules() {
				if r.Pattern != rec.Pattern {
					continue
				}
				r.Priority = rec.NewPriority
				log.Info("priority changed", "pattern", r.Pattern, "priority", r.Priority)
			}
		default:
			return fmt.Errorf("unknown recommendation kind %q", rec.Kind)
		}
	}
	table.Resort()
	return nil
}
