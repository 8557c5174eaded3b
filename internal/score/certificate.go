package score

import (
	"splicecert/internal/compose"
)

// RecKind discriminates the recommendation variants.
type RecKind string

const (
	// RecIncreasePenalty adds Delta to the penalty of every rule whose
	// pattern equals Pattern.
	RecIncreasePenalty RecKind = "increase_penalty"
	// RecDeprioritize sets the priority of every rule whose pattern equals
	// Pattern to NewPriority.
	RecDeprioritize RecKind = "deprioritize"
)

// Recommendation is a tagged follow-up instruction attached to a
// certificate. Exactly one of Delta or NewPriority is meaningful,
// selected by Kind; the feedback updater handles the variants
// exhaustively.
type Recommendation struct {
	Kind        RecKind `json:"kind"`
	Pattern     string  `json:"pattern"`
	Delta       float64 `json:"delta,omitempty"`
	NewPriority int     `json:"new_priority,omitempty"`
}

// Certificate is the immutable record of one scoring run. The table hash
// detects rule-table drift between certificate generation and feedback
// application; everything else captures the run's inputs and outputs.
// Certificates are created once and never mutated.
type Certificate struct {
	ID              string           `json:"id"`
	TableHash       string           `json:"aux_table_hash"`
	K               int              `json:"k"`
	Regions         []compose.Region `json:"selected_regions"`
	Scores          []float64        `json:"scores"`
	Cost            float64          `json:"cost"`
	PhiOriginal     []string         `json:"phi_original"`
	PhiClone        []string         `json:"phi_clone"`
	HealthScore     float64          `json:"health_score"`
	Recommendations []Recommendation `json:"recommendations"`
	Timestamp       string           `json:"timestamp"`
}
