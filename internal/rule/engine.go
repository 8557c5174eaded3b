package rule

import (
	"strconv"
	"strings"
)

// Engine applies the full rule-matching path to whole sequences: pattern
// search, prototype-tag filtering and length bounds. This is the one place
// bounds are enforced; interval composition deliberately ignores them.
type Engine struct {
	table      *Table
	prototypes map[string]map[string]bool // prototype name -> member sequences
}

// NewEngine wraps a table in a matching engine with an empty prototype map.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table, prototypes: make(map[string]map[string]bool)}
}

// Table returns the engine's underlying rule table.
func (e *Engine) Table() *Table { return e.table }

// RegisterPrototype associates a prototype name with its member sequences.
// Registering the same name again replaces the member set.
func (e *Engine) RegisterPrototype(name string, sequences []string) {
	set := make(map[string]bool, len(sequences))
	for _, s := range sequences {
		set[s] = true
	}
	e.prototypes[name] = set
}

// sequencePrototypes returns the names of all prototypes containing seq.
func (e *Engine) sequencePrototypes(seq string) map[string]bool {
	out := make(map[string]bool)
	for name, members := range e.prototypes {
		if members[seq] {
			out[name] = true
		}
	}
	return out
}

// MatchSequence returns every rule that matches seq: the pattern occurs in
// the sequence, all of the rule's tags name prototypes containing the
// sequence, and the sequence length satisfies the rule's bounds.
func (e *Engine) MatchSequence(seq string) []*Rule {
	var matched []*Rule
	protos := e.sequencePrototypes(seq)
	for _, r := range e.table.Rules() {
		if !r.Matches(seq) {
			continue
		}
		if !subset(r.Tags, protos) {
			continue
		}
		if !r.InBounds(len(seq)) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// ApplyRules applies the actions of every matching rule to seq in table
// order and accrues their penalties. Returns the modified sequence and the
// total penalty.
func (e *Engine) ApplyRules(seq string) (string, float64) {
	modified := seq
	total := 0.0
	for _, r := range e.MatchSequence(seq) {
		modified = applyActions(modified, r.Actions)
		total += r.Penalty
	}
	return modified, total
}

// applyActions applies each action directive to the sequence. Unknown
// directives and malformed arguments are skipped.
func applyActions(seq string, actions []string) string {
	result := seq
	for _, action := range actions {
		switch {
		case action == "reverse":
			result = reverse(result)
		case action == "complement":
			result = Complement(result)
		case strings.HasPrefix(action, "trim:"):
			n, err := strconv.Atoi(strings.TrimPrefix(action, "trim:"))
			if err == nil && n >= 0 && n < len(result) {
				result = result[:n]
			}
		case strings.HasPrefix(action, "insert:"):
			result += strings.TrimPrefix(action, "insert:")
		}
	}
	return result
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Complement returns the DNA complement of a sequence. Bases outside the
// A/T/C/G/N alphabet complement to N.
func Complement(seq string) string {
	b := []byte(seq)
	for i, c := range b {
		switch c {
		case 'A':
			b[i] = 'T'
		case 'T':
			b[i] = 'A'
		case 'C':
			b[i] = 'G'
		case 'G':
			b[i] = 'C'
		case 'N':
			b[i] = 'N'
		default:
			b[i] = 'N'
		}
	}
	return string(b)
}

// subset reports whether every element of tags is present in set.
func subset(tags []string, set map[string]bool) bool {
	for _, t := range tags {
		if !set[t] {
			return false
		}
	}
	return true
}
