package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicecert/internal/display"
	"splicecert/internal/format"
	"splicecert/internal/ruledef"
)

var rulesFlags struct {
	rules  string
	format string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show a rule table definition and its audit hash",
	RunE:  runRules,
}

func init() {
	f := rulesCmd.Flags()
	f.StringVar(&rulesFlags.rules, "rules", "", "Rule table definition (YAML/JSON, required)")
	f.StringVar(&rulesFlags.format, "format", "ascii", "Output format (ascii, markdown)")
	_ = rulesCmd.MarkFlagRequired("rules")
}

func runRules(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(rulesFlags.format)
	if err != nil {
		return err
	}
	def, err := ruledef.LoadFromPath(rulesFlags.rules)
	if err != nil {
		return err
	}
	tbl, err := def.Table()
	if err != nil {
		return err
	}

	tb := format.NewTable(mode)
	tb.Header("Pattern", "Tags", "Actions", "Priority", "Penalty", "Bounds")
	tb.Columns(format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight})
	for _, r := range tbl.Rules() {
		bounds := "-"
		if r.Bounds != nil {
			bounds = r.Bounds.String()
		}
		tb.Row(r.Pattern, display.Tags(r.Tags), display.Actions(r.Actions),
			r.Priority, format.FmtPenalty(r.Penalty), bounds)
	}
	fmt.Println(tb.String())
	fmt.Printf("k: %d\n", def.K)
	fmt.Printf("table hash: %s\n", tbl.Hash())
	return nil
}
