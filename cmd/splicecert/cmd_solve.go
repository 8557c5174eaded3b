package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicecert/internal/format"
	"splicecert/internal/ruledef"
	"splicecert/internal/solve"
)

var solveFlags struct {
	rules      string
	candidates string
	format     string
}

var solveCmd = &cobra.Command{
	Use:   "solve [candidate...]",
	Short: "Apply rule actions to candidate sequences and pick the cheapest",
	Long: `Solve runs every candidate through the whole-sequence rule engine:
matching rules (pattern, prototype tags, bounds) apply their action
directives and accrue their penalties. The candidate with the lowest
penalty is the optimal solution.`,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveFlags.rules, "rules", "", "Rule table definition (YAML/JSON, required)")
	f.StringVar(&solveFlags.candidates, "candidates", "", "File with one candidate sequence per line")
	f.StringVar(&solveFlags.format, "format", "ascii", "Output format (ascii, markdown)")
	_ = solveCmd.MarkFlagRequired("rules")
}

func runSolve(_ *cobra.Command, args []string) error {
	mode, err := parseMode(solveFlags.format)
	if err != nil {
		return err
	}
	candidates := args
	if solveFlags.candidates != "" {
		fromFile, err := readLinesFile(solveFlags.candidates)
		if err != nil {
			return err
		}
		candidates = append(fromFile, candidates...)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates: pass arguments or --candidates")
	}

	def, err := ruledef.LoadFromPath(solveFlags.rules)
	if err != nil {
		return err
	}
	engine, err := def.Engine()
	if err != nil {
		return err
	}

	solver := solve.New(engine)
	solutions := solver.Solve(candidates)

	tb := format.NewTable(mode)
	tb.Header("Candidate", "Result", "Penalty")
	for _, sol := range solutions {
		tb.Row(format.Truncate(sol.Input, 32), format.Truncate(sol.Sequence, 32),
			format.FmtPenalty(sol.Penalty))
	}
	fmt.Println(tb.String())
	fmt.Printf("optimal: %s\n", solver.Optimal(candidates))
	return nil
}
