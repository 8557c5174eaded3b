package main

import (
	"fmt"
	"os"
	"strings"

	"splicecert/internal/display"
	"splicecert/internal/format"
	"splicecert/internal/score"
)

// parseMode maps the --format flag to a table rendering mode.
func parseMode(s string) (format.Mode, error) {
	switch strings.ToLower(s) {
	case "", "ascii":
		return format.ASCII, nil
	case "markdown", "md":
		return format.Markdown, nil
	}
	return format.ASCII, fmt.Errorf("unknown output format %q", s)
}

// readSequenceFile loads a sequence file: line comments (#) are dropped
// and the remaining lines are concatenated, so both bare sequences and
// simple FASTA-style files work.
func readSequenceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read sequence: %w", err)
	}
	return parseSequence(string(data)), nil
}

func parseSequence(data string) string {
	var b strings.Builder
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// readLinesFile loads one entry per line, skipping blanks and # comments.
func readLinesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// printResult renders one scoring run.
func printResult(mode format.Mode, run int, res *score.Result) {
	cert := res.Certificate
	tb := format.NewTable(mode)
	tb.Header("Run", "Regions", "Score", "Cost", "Health", "Defect")
	tb.Row(run, format.FmtRegions(cert.Regions), format.FmtScore(res.Score),
		format.FmtPenalty(cert.Cost), format.FmtScore(cert.HealthScore),
		format.BoolMark(res.ErrorDetected))
	fmt.Println(tb.String())

	if len(cert.Recommendations) > 0 {
		rb := format.NewTable(mode)
		rb.Header("Recommendation", "Pattern", "Value")
		for _, rec := range cert.Recommendations {
			switch rec.Kind {
			case score.RecIncreasePenalty:
				rb.Row(display.RecKind(string(rec.Kind)), rec.Pattern, fmt.Sprintf("+%.1f", rec.Delta))
			case score.RecDeprioritize:
				rb.Row(display.RecKind(string(rec.Kind)), rec.Pattern, rec.NewPriority)
			}
		}
		fmt.Println(rb.String())
	}
}
