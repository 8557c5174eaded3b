package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicecert/internal/certfile"
	"splicecert/internal/cycle"
	"splicecert/internal/rule"
)

// demoGenome carries one healthy splice site, one drift-prone site and a
// TTTT lesion that the exclude rule keeps out of every region — the
// feedback loop's canonical trigger.
const demoGenome = "ATCGCGTATTTTATCG"

var demoFlags struct {
	outDir string
	cycles int
	format string
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in demo table against the demo genome",
	RunE:  runDemo,
}

func init() {
	f := demoCmd.Flags()
	f.StringVar(&demoFlags.outDir, "out-dir", ".splicecert", "Directory for the certificate artifact pair")
	f.IntVar(&demoFlags.cycles, "cycles", 2, "Max evaluation cycles while a defect is detected")
	f.StringVar(&demoFlags.format, "format", "ascii", "Output format (ascii, markdown)")
}

// demoTable is the worked example table: two healthy splice rules, one
// risky exclusion and one lesion marker.
func demoTable() *rule.Table {
	return rule.NewTable(
		rule.MustNew("ATCG", []string{"short_hair", "healthy", "mammal_safe"}, []string{"splice", "validate"}, 1, 0.5, nil),
		rule.MustNew("CGTA", []string{"long_hair", "healthy", "mammal_safe"}, []string{"splice", "check_drift"}, 2, 1.0, nil),
		rule.MustNew("GCTA", []string{"long_hair", "risky"}, []string{"exclude", "log_error"}, 3, 2.0, nil),
		rule.MustNew("TTTT", []string{"lesion", "error"}, []string{"exclude", "flag_mito"}, 4, 5.0, nil),
	)
}

func runDemo(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(demoFlags.format)
	if err != nil {
		return err
	}

	eng := cycle.New(demoTable(), 4, cycle.WithPersister(certfile.NewWriter(demoFlags.outDir)))
	fmt.Printf("genome: %s\n\n", demoGenome)

	cycles := demoFlags.cycles
	if cycles < 1 {
		cycles = 1
	}
	for run := 1; run <= cycles; run++ {
		res, err := eng.RunCycle(demoGenome)
		if err != nil {
			return err
		}
		printResult(mode, run, res)
		if !res.ErrorDetected {
			break
		}
	}
	fmt.Printf("Certificate artifacts: %s/%s, %s/%s\n",
		demoFlags.outDir, certfile.CAVName, demoFlags.outDir, certfile.JSONName)
	return nil
}
