package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicecert/internal/certfile"
	"splicecert/internal/cycle"
	"splicecert/internal/ruledef"
	"splicecert/internal/store"
)

var evaluateFlags struct {
	rules    string
	sequence string
	seqFile  string
	k        int
	outDir   string
	dbPath   string
	noStore  bool
	cycles   int
	format   string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run evaluation cycles on a sequence and emit a certificate",
	Long: `Evaluate composes healthy regions from the sequence, scores property
preservation, writes the certificate artifact pair, and applies the
certificate's recommendations to the in-memory table. With --cycles > 1
the same sequence is re-evaluated against the tuned table while a defect
is still detected.`,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.rules, "rules", "", "Rule table definition (YAML/JSON, required)")
	f.StringVar(&evaluateFlags.sequence, "sequence", "", "Sequence literal")
	f.StringVar(&evaluateFlags.seqFile, "sequence-file", "", "Path to sequence file (alternative to --sequence)")
	f.IntVar(&evaluateFlags.k, "k", 0, "Window size (0 = from definition)")
	f.StringVar(&evaluateFlags.outDir, "out-dir", ".splicecert", "Directory for the certificate artifact pair")
	f.StringVar(&evaluateFlags.dbPath, "db", store.DefaultDBPath, "Certificate history DB path")
	f.BoolVar(&evaluateFlags.noStore, "no-store", false, "Skip recording certificates in the history DB")
	f.IntVar(&evaluateFlags.cycles, "cycles", 1, "Max evaluation cycles while a defect is detected")
	f.StringVar(&evaluateFlags.format, "format", "ascii", "Output format (ascii, markdown)")
	_ = evaluateCmd.MarkFlagRequired("rules")
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(evaluateFlags.format)
	if err != nil {
		return err
	}
	if (evaluateFlags.sequence == "") == (evaluateFlags.seqFile == "") {
		return fmt.Errorf("exactly one of --sequence or --sequence-file is required")
	}
	seq := evaluateFlags.sequence
	if evaluateFlags.seqFile != "" {
		if seq, err = readSequenceFile(evaluateFlags.seqFile); err != nil {
			return err
		}
	}

	def, err := ruledef.LoadFromPath(evaluateFlags.rules)
	if err != nil {
		return err
	}
	tbl, err := def.Table()
	if err != nil {
		return err
	}
	k := def.K
	if evaluateFlags.k > 0 {
		k = evaluateFlags.k
	}

	var hist *store.Store
	if !evaluateFlags.noStore {
		if hist, err = store.Open(evaluateFlags.dbPath); err != nil {
			return err
		}
		defer hist.Close()
	}

	eng := cycle.New(tbl, k, cycle.WithPersister(certfile.NewWriter(evaluateFlags.outDir)))

	cycles := evaluateFlags.cycles
	if cycles < 1 {
		cycles = 1
	}
	for run := 1; run <= cycles; run++ {
		res, err := eng.RunCycle(seq)
		if err != nil {
			return err
		}
		if hist != nil {
			if err := hist.Save(res.Certificate, res.ErrorDetected); err != nil {
				return err
			}
		}
		printResult(mode, run, res)
		if !res.ErrorDetected {
			break
		}
	}
	fmt.Printf("Certificate artifacts: %s/%s, %s/%s\n",
		evaluateFlags.outDir, certfile.CAVName, evaluateFlags.outDir, certfile.JSONName)
	return nil
}
