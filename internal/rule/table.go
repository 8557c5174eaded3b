package rule

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Table is the ordered auxiliary rule table, always sorted by descending
// priority. The sort is stable: rules with equal priority keep insertion
// order. Mutation happens only through Insert and the feedback updater
// (which calls Resort after adjusting priorities).
type Table struct {
	rules []*Rule
}

// NewTable builds a table from the given rules, sorted by priority.
func NewTable(rules ...*Rule) *Table {
	t := &Table{rules: append([]*Rule(nil), rules...)}
	t.Resort()
	return t
}

// Insert appends a rule and re-sorts the table.
func (t *Table) Insert(r *Rule) {
	t.rules = append(t.rules, r)
	t.Resort()
}

// Rules returns the table's rules in priority order. The slice is shared;
// callers must not reorder it directly.
func (t *Table) Rules() []*Rule { return t.rules }

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.rules) }

// Resort restores the priority-descending order after rule priorities
// have been mutated in place.
func (t *Table) Resort() {
	sort.SliceStable(t.rules, func(i, j int) bool {
		return t.rules[i].Priority > t.rules[j].Priority
	})
}

// Hash returns the hex SHA-256 of the table's canonical serialization.
// The serialization covers every rule field in table order, so any change
// to a pattern, tag, action, priority, penalty or bound — or to the rule
// order — changes the hash. Certificates carry it for auditability.
func (t *Table) Hash() string {
	var b strings.Builder
	for _, r := range t.rules {
		b.WriteString(r.Pattern)
		b.WriteByte('|')
		b.WriteString(strings.Join(r.Tags, ","))
		b.WriteByte('|')
		b.WriteString(strings.Join(r.Actions, ","))
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(r.Priority))
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(r.Penalty, 'g', -1, 64))
		b.WriteByte('|')
		if r.Bounds != nil {
			b.WriteString(r.Bounds.String())
		}
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
