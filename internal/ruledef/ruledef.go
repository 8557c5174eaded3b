// Package ruledef loads rule table definitions from YAML or JSON files
// and builds validated rule tables from them.
package ruledef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"splicecert/internal/rule"
)

// DefaultK is the window size used when a definition omits k.
const DefaultK = 4

// Def is a complete rule table definition: the window size, the rules, and
// optional prototype registrations for the whole-sequence matching engine.
type Def struct {
	K          int                 `json:"k,omitempty" yaml:"k,omitempty"`
	Rules      []RuleDef           `json:"rules" yaml:"rules"`
	Prototypes map[string][]string `json:"prototypes,omitempty" yaml:"prototypes,omitempty"`
}

// RuleDef is the file form of one rule.
type RuleDef struct {
	Pattern  string       `json:"pattern" yaml:"pattern"`
	Tags     []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Actions  []string     `json:"actions,omitempty" yaml:"actions,omitempty"`
	Priority int          `json:"priority" yaml:"priority"`
	Penalty  float64      `json:"penalty" yaml:"penalty"`
	Bounds   *rule.Bounds `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

// LoadFromPath reads a definition file (YAML or JSON) and returns the parsed Def.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by
// content (first non-whitespace char).
func LoadFromPath(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule definition: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a definition from bytes. ext is the file extension for a
// format hint; empty = detect from content.
func Load(data []byte, ext string) (*Def, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	var d Def
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse rule definition yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse rule definition json: %w", err)
		}
	default:
		// Detect: JSON starts with {, everything else is YAML.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			if err := json.Unmarshal(data, &d); err != nil {
				return nil, fmt.Errorf("parse rule definition json: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse rule definition yaml: %w", err)
		}
	}
	if d.K == 0 {
		d.K = DefaultK
	}
	if len(d.Rules) == 0 {
		return nil, fmt.Errorf("rule definition has no rules")
	}
	return &d, nil
}

// Table builds the rule table from the definition. The first invalid
// pattern aborts with its PatternError: a table never holds invalid rules.
func (d *Def) Table() (*rule.Table, error) {
	rules := make([]*rule.Rule, 0, len(d.Rules))
	for i, rd := range d.Rules {
		r, err := rule.New(rd.Pattern, rd.Tags, rd.Actions, rd.Priority, rd.Penalty, rd.Bounds)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rule.NewTable(rules...), nil
}

// Engine builds a whole-sequence matching engine with the definition's
// prototypes registered.
func (d *Def) Engine() (*rule.Engine, error) {
	tbl, err := d.Table()
	if err != nil {
		return nil, err
	}
	e := rule.NewEngine(tbl)
	for name, seqs := range d.Prototypes {
		e.RegisterPrototype(name, seqs)
	}
	return e, nil
}
