// Package compose scans a sequence for rule matches and selects a
// non-overlapping set of regions: annotate every k-wide window, group
// adjacent annotations by tag set, then greedily keep candidates tagged
// "healthy" in increasing start order.
package compose

import (
	"fmt"
	"sort"

	"splicecert/internal/rule"
)

// Region is a half-open interval [Start, End) over sequence indices.
type Region struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Region) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Len returns the region's length.
func (r Region) Len() int { return r.End - r.Start }

// Slice extracts the region's text from seq.
func (r Region) Slice(seq string) string { return seq[r.Start:r.End] }

// annotation marks one window hit: [start, end) matched by rule.
type annotation struct {
	start, end int
	r          *rule.Rule
}

// candidate is a collapsed group of adjacent same-tag-set annotations,
// carrying the group's first rule for priority, penalty and tags.
type candidate struct {
	start, end int
	r          *rule.Rule
}

// Compose selects non-overlapping regions of seq according to the rule
// table and window size k. Regions come back in increasing start order and
// every one carries the "healthy" tag. An empty sequence or k larger than
// the sequence yields nil. Rule bounds are not consulted here.
func Compose(seq string, table *rule.Table, k int) []Region {
	if k <= 0 || k > len(seq) {
		return nil
	}

	var anns []annotation
	for i := 0; i+k <= len(seq); i++ {
		window := seq[i : i+k]
		for _, r := range table.Rules() {
			if r.HasAction("exclude") {
				continue
			}
			if !r.Matches(window) {
				continue
			}
			anns = append(anns, annotation{start: i, end: i + k, r: r})
		}
	}
	sort.SliceStable(anns, func(i, j int) bool { return anns[i].start < anns[j].start })

	// Collapse runs of adjacent annotations sharing an identical tag set.
	// Adjacency is positional in the sorted order: equal tag sets separated
	// by a different one form separate groups.
	var cands []candidate
	for i := 0; i < len(anns); {
		j := i
		key := anns[i].r.TagKey()
		for j+1 < len(anns) && anns[j+1].r.TagKey() == key {
			j++
		}
		cands = append(cands, candidate{start: anns[i].start, end: anns[j].end, r: anns[i].r})
		i = j + 1
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].r.Priority < cands[j].r.Priority
	})

	// Greedy selection: earliest-start first, no overlap, "healthy" only.
	var selected []Region
	lastEnd := 0
	for _, c := range cands {
		if c.start >= lastEnd && c.r.HasTag("healthy") {
			selected = append(selected, Region{Start: c.start, End: c.end})
			lastEnd = c.end
		}
	}
	return selected
}
