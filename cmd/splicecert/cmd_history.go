package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splicecert/internal/format"
	"splicecert/internal/store"
)

var historyFlags struct {
	dbPath string
	limit  int
	id     string
	prune  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or inspect stored certificates",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.dbPath, "db", store.DefaultDBPath, "Certificate history DB path")
	f.IntVar(&historyFlags.limit, "limit", 20, "Max rows to list (0 = all)")
	f.StringVar(&historyFlags.id, "id", "", "Dump one certificate as JSON")
	f.IntVar(&historyFlags.prune, "prune", -1, "Keep only the newest N certificates (-1 = no pruning)")
	f.StringVar(&historyFlags.format, "format", "ascii", "Output format (ascii, markdown)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(historyFlags.format)
	if err != nil {
		return err
	}
	hist, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer hist.Close()

	if historyFlags.id != "" {
		cert, err := hist.Get(historyFlags.id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cert)
	}

	if historyFlags.prune >= 0 {
		removed, err := hist.Prune(historyFlags.prune)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d certificates\n", removed)
	}

	sums, err := hist.List(historyFlags.limit)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Println("no certificates recorded")
		return nil
	}
	tb := format.NewTable(mode)
	tb.Header("ID", "Created", "K", "Score", "Cost", "Health", "Defect", "Table Hash")
	for _, s := range sums {
		tb.Row(format.Truncate(s.ID, 12), s.CreatedAt, s.K, format.FmtScore(s.Score),
			format.FmtPenalty(s.Cost), format.FmtScore(s.HealthScore),
			format.BoolMark(s.ErrorDetected), format.Truncate(s.TableHash, 12))
	}
	fmt.Println(tb.String())
	return nil
}
