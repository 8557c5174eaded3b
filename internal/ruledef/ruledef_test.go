package ruledef

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"splicecert/internal/rule"
)

const yamlDef = `
k: 4
rules:
  - pattern: ATCG
    tags: [healthy, short_hair]
    actions: [splice, validate]
    priority: 1
    penalty: 0.5
    bounds: {min: 4, max: 16}
  - pattern: TTTT
    tags: [error, lesion]
    actions: [exclude, flag_mito]
    priority: 4
    penalty: 5.0
prototypes:
  mammal_safe: [ATCGCGTA]
`

const jsonDef = `{
  "k": 4,
  "rules": [
    {"pattern": "ATCG", "tags": ["healthy", "short_hair"], "actions": ["splice", "validate"], "priority": 1, "penalty": 0.5, "bounds": {"min": 4, "max": 16}},
    {"pattern": "TTTT", "tags": ["error", "lesion"], "actions": ["exclude", "flag_mito"], "priority": 4, "penalty": 5.0}
  ],
  "prototypes": {"mammal_safe": ["ATCGCGTA"]}
}`

func TestLoadYAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := Load([]byte(yamlDef), ".yaml")
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	fromJSON, err := Load([]byte(jsonDef), ".json")
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromJSON); diff != "" {
		t.Errorf("yaml and json definitions disagree (-yaml +json):\n%s", diff)
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	if _, err := Load([]byte(jsonDef), ""); err != nil {
		t.Errorf("content detection failed for json: %v", err)
	}
	if _, err := Load([]byte(yamlDef), ""); err != nil {
		t.Errorf("content detection failed for yaml: %v", err)
	}
}

func TestLoadDefaultsK(t *testing.T) {
	d, err := Load([]byte("rules:\n  - pattern: ATCG\n    priority: 1\n"), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.K != DefaultK {
		t.Errorf("K = %d, want default %d", d.K, DefaultK)
	}
}

func TestLoadRejectsEmpty(t *testing.T) {
	if _, err := Load([]byte("k: 4\n"), ".yaml"); err == nil {
		t.Error("Load accepted a definition without rules")
	}
}

func TestTableBuildsSortedTable(t *testing.T) {
	d, err := Load([]byte(yamlDef), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl, err := d.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("table has %d rules", tbl.Len())
	}
	if tbl.Rules()[0].Pattern != "TTTT" {
		t.Errorf("table head = %s, want TTTT (priority 4)", tbl.Rules()[0].Pattern)
	}
	if b := tbl.Rules()[1].Bounds; b == nil || b.Min != 4 || b.Max != 16 {
		t.Errorf("bounds = %+v, want 4..16", b)
	}
}

func TestTableRejectsInvalidPattern(t *testing.T) {
	d := &Def{Rules: []RuleDef{{Pattern: "AT[CG", Priority: 1}}}
	_, err := d.Table()
	if err == nil {
		t.Fatal("Table accepted an invalid pattern")
	}
	var perr *rule.PatternError
	if !errors.As(err, &perr) {
		t.Errorf("error %v does not wrap *rule.PatternError", err)
	}
}

func TestEngineRegistersPrototypes(t *testing.T) {
	d, err := Load([]byte(yamlDef), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e, err := d.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	// ATCG needs both healthy and short_hair prototypes; only mammal_safe
	// is registered, so nothing matches.
	if got := e.MatchSequence("ATCGCGTA"); len(got) != 0 {
		t.Errorf("MatchSequence matched %d rules, want 0 (prototypes unregistered)", len(got))
	}
}
