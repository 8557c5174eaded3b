package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splicecert/internal/batch"
	"splicecert/internal/certfile"
	"splicecert/internal/cycle"
	"splicecert/internal/format"
	"splicecert/internal/ruledef"
	"splicecert/internal/store"
)

var batchFlags struct {
	rules     string
	sequences string
	workers   int
	outDir    string
	dbPath    string
	noStore   bool
	format    string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate many sequences against one shared rule table",
	Long: `Batch runs one evaluation cycle per input sequence through a bounded
worker pool. All cycles share the rule table; each holds it exclusively
for its read-rules → mutate-rules span, so feedback from one sequence is
visible to the cycles that follow it.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchFlags.rules, "rules", "", "Rule table definition (YAML/JSON, required)")
	f.StringVar(&batchFlags.sequences, "sequences", "", "File with one sequence per line (required)")
	f.IntVar(&batchFlags.workers, "workers", 4, "Concurrent evaluation cycles")
	f.StringVar(&batchFlags.outDir, "out-dir", ".splicecert", "Directory for the certificate artifact pair (last cycle wins)")
	f.StringVar(&batchFlags.dbPath, "db", store.DefaultDBPath, "Certificate history DB path")
	f.BoolVar(&batchFlags.noStore, "no-store", false, "Skip recording certificates in the history DB")
	f.StringVar(&batchFlags.format, "format", "ascii", "Output format (ascii, markdown)")
	_ = batchCmd.MarkFlagRequired("rules")
	_ = batchCmd.MarkFlagRequired("sequences")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	mode, err := parseMode(batchFlags.format)
	if err != nil {
		return err
	}
	sequences, err := readLinesFile(batchFlags.sequences)
	if err != nil {
		return err
	}
	if len(sequences) == 0 {
		return fmt.Errorf("%s contains no sequences", batchFlags.sequences)
	}

	def, err := ruledef.LoadFromPath(batchFlags.rules)
	if err != nil {
		return err
	}
	tbl, err := def.Table()
	if err != nil {
		return err
	}

	eng := cycle.New(tbl, def.K, cycle.WithPersister(certfile.NewWriter(batchFlags.outDir)))
	items, err := batch.Run(cmd.Context(), eng, sequences, batchFlags.workers)
	if err != nil {
		return err
	}

	var hist *store.Store
	if !batchFlags.noStore {
		if hist, err = store.Open(batchFlags.dbPath); err != nil {
			return err
		}
		defer hist.Close()
	}

	tb := format.NewTable(mode)
	tb.Header("#", "Sequence", "Regions", "Score", "Cost", "Defect")
	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
			tb.Row(it.Index+1, format.Truncate(it.Sequence, 24), "-", "-", "-", it.Err.Error())
			continue
		}
		cert := it.Result.Certificate
		if hist != nil {
			if err := hist.Save(cert, it.Result.ErrorDetected); err != nil {
				return err
			}
		}
		tb.Row(it.Index+1, format.Truncate(it.Sequence, 24), format.FmtRegions(cert.Regions),
			format.FmtScore(it.Result.Score), format.FmtPenalty(cert.Cost),
			format.BoolMark(it.Result.ErrorDetected))
	}
	fmt.Println(tb.String())
	if failed > 0 {
		return fmt.Errorf("%d of %d sequences failed", failed, len(items))
	}
	return nil
}
