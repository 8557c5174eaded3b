// Package score computes how well selected regions preserve the tag
// properties of the original sequence and emits the verification
// certificate for the run, including follow-up recommendations for rules
// whose defect patterns went undetected.
package score

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"splicecert/internal/compose"
	"splicecert/internal/rule"
)

// Score weighting. Fixed policy constants: certificates produced with any
// other weighting are not comparable across runs.
const (
	jaccardWeight = 0.6
	healthWeight  = 0.35
	penaltyWeight = 0.03
	regionWeight  = 0.02
)

// penaltyDelta is the penalty increase recommended for every error-tagged
// rule whose match was lost in the selected regions.
const penaltyDelta = 2.0

// Result bundles a scoring run's outputs.
type Result struct {
	Score         float64
	Certificate   *Certificate
	ErrorDetected bool
}

// now is swapped out by tests for deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }

// Score evaluates the selected regions of seq against the rule table.
//
// phi_original collects the tags of every rule matching the full sequence;
// phi_clone collects the tags of every rule matching inside at least one
// region. Their Jaccard similarity, the fraction of regions carrying a
// healthy match, the accrued penalty of distinct matching rules and the
// region count combine into the scalar score. Every error-tagged rule that
// matches the sequence but no region marks the run defective and yields an
// increase-penalty plus a deprioritize recommendation.
func Score(seq string, regions []compose.Region, table *rule.Table, k int) *Result {
	phiOriginal := make(map[string]bool)
	phiClone := make(map[string]bool)
	totalPenalty := 0.0

	matchesClone := func(r *rule.Rule) bool {
		for _, reg := range regions {
			if r.Matches(reg.Slice(seq)) {
				return true
			}
		}
		return false
	}

	for _, r := range table.Rules() {
		if r.Matches(seq) {
			addAll(phiOriginal, r.Tags)
		}
		if matchesClone(r) {
			addAll(phiClone, r.Tags)
			// Distinct rules only: one penalty per rule regardless of how
			// many regions it matches.
			totalPenalty += r.Penalty
		}
	}

	jaccard := jaccardIndex(phiOriginal, phiClone)

	healthyRegions := 0
	for _, reg := range regions {
		text := reg.Slice(seq)
		for _, r := range table.Rules() {
			if r.HasTag("healthy") && r.Matches(text) {
				healthyRegions++
				break
			}
		}
	}
	healthScore := 0.0
	if len(regions) > 0 {
		healthScore = float64(healthyRegions) / float64(len(regions))
	}

	value := jaccardWeight*jaccard +
		healthWeight*healthScore -
		penaltyWeight*totalPenalty +
		regionWeight*float64(len(regions))

	var recs []Recommendation
	errorDetected := false
	for _, r := range table.Rules() {
		if !r.HasTag("error") || !r.Matches(seq) || matchesClone(r) {
			continue
		}
		errorDetected = true
		recs = append(recs,
			Recommendation{Kind: RecIncreasePenalty, Pattern: r.Pattern, Delta: penaltyDelta},
			Recommendation{Kind: RecDeprioritize, Pattern: r.Pattern, NewPriority: r.Priority + 1},
		)
	}

	cert := &Certificate{
		ID:              uuid.NewString(),
		TableHash:       table.Hash(),
		K:               k,
		Regions:         append([]compose.Region(nil), regions...),
		Scores:          []float64{value},
		Cost:            totalPenalty,
		PhiOriginal:     sortedKeys(phiOriginal),
		PhiClone:        sortedKeys(phiClone),
		HealthScore:     healthScore,
		Recommendations: recs,
		Timestamp:       now().Format(time.RFC3339),
	}

	return &Result{Score: value, Certificate: cert, ErrorDetected: errorDetected}
}

// jaccardIndex returns |a ∩ b| / |a ∪ b|, and 1.0 for two empty sets.
func jaccardIndex(a, b map[string]bool) float64 {
	union := make(map[string]bool, len(a)+len(b))
	inter := 0
	for t := range a {
		union[t] = true
	}
	for t := range b {
		union[t] = true
		if a[t] {
			inter++
		}
	}
	if len(union) == 0 {
		return 1.0
	}
	return float64(inter) / float64(len(union))
}

func addAll(set map[string]bool, tags []string) {
	for _, t := range tags {
		set[t] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
