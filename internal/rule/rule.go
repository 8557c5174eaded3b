// Package rule implements the auxiliary rule model: validated pattern
// matchers with tags, actions, priority and penalty, kept in a table
// sorted by descending priority.
package rule

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PatternError reports a rule pattern that failed validation at construction.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Bounds constrains the sequence lengths a rule applies to (inclusive).
type Bounds struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (b Bounds) String() string { return fmt.Sprintf("%d..%d", b.Min, b.Max) }

// Rule is one entry of the auxiliary table: a compiled pattern plus the
// metadata the composer, scorer and feedback updater consult.
// The pattern is immutable after construction; Priority and Penalty are
// the only fields mutated afterwards (by the feedback updater).
type Rule struct {
	Pattern  string   `json:"pattern"`
	Tags     []string `json:"tags"`    // sorted, duplicates collapsed
	Actions  []string `json:"actions"` // sorted, duplicates collapsed
	Priority int      `json:"priority"`
	Penalty  float64  `json:"penalty"`
	Bounds   *Bounds  `json:"bounds,omitempty"`

	re *regexp.Regexp
}

// New validates and compiles pattern and returns the rule.
// An empty or non-compiling pattern yields a *PatternError.
func New(pattern string, tags, actions []string, priority int, penalty float64, bounds *Bounds) (*Rule, error) {
	if pattern == "" {
		return nil, &PatternError{Pattern: pattern, Err: errors.New("empty pattern")}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Rule{
		Pattern:  pattern,
		Tags:     normalizeSet(tags),
		Actions:  normalizeSet(actions),
		Priority: priority,
		Penalty:  penalty,
		Bounds:   bounds,
		re:       re,
	}, nil
}

// MustNew is New for literal rule tables in tests and demo data; it panics
// on an invalid pattern.
func MustNew(pattern string, tags, actions []string, priority int, penalty float64, bounds *Bounds) *Rule {
	r, err := New(pattern, tags, actions, priority, penalty, bounds)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the rule's pattern occurs anywhere in text.
// This single predicate serves both matching modes: fixed-width window
// scans and whole-region containment checks.
func (r *Rule) Matches(text string) bool { return r.re.MatchString(text) }

// HasTag reports whether the rule carries the given tag.
func (r *Rule) HasTag(tag string) bool { return contains(r.Tags, tag) }

// HasAction reports whether the rule carries the given action directive.
func (r *Rule) HasAction(action string) bool { return contains(r.Actions, action) }

// InBounds reports whether a sequence of length n satisfies the rule's
// optional length bounds. Rules without bounds accept every length.
func (r *Rule) InBounds(n int) bool {
	return r.Bounds == nil || (r.Bounds.Min <= n && n <= r.Bounds.Max)
}

// TagKey returns a canonical key for the rule's tag set, used to compare
// tag sets for equality when grouping annotations.
func (r *Rule) TagKey() string { return strings.Join(r.Tags, ",") }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// normalizeSet sorts and deduplicates a string set. Order of the input is
// irrelevant by contract, so the sorted form is the canonical one.
func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
