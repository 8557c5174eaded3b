// Package certfile persists certificates in their two artifact forms: a
// line-oriented .cav text file and a structured JSON file. Both are fully
// overwritten on every run, and both are written or neither is.
package certfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splicecert/internal/score"
)

// Artifact file names inside the output directory.
const (
	CAVName  = "clonecertificate.cav"
	JSONName = "clonecertificate.json"
)

// headerLine precedes the key/value pairs of the .cav form.
const headerLine = "# splicecert directed evolution certificate"

// cavKeys lists the .cav keys in emission order. The set and spelling are
// a compatibility contract with downstream certificate consumers.
var cavKeys = []string{
	"AUX_TABLE_HASH",
	"K",
	"SELECTED_REGIONS",
	"SCORES",
	"COST",
	"PHI_ORIGINAL",
	"PHI_CLONE",
	"HEALTH_SCORE",
	"RECOMMENDATIONS",
	"TIMESTAMP",
}

// Writer persists certificates into a directory. The zero value is not
// usable; construct with NewWriter.
type Writer struct {
	dir string
}

// NewWriter returns a Writer that overwrites the artifact pair in dir.
func NewWriter(dir string) *Writer { return &Writer{dir: dir} }

// Persist writes the .cav and JSON forms of cert. The files are staged as
// temp files and renamed only once both writes succeed, so a failure
// leaves the previous pair intact.
func (w *Writer) Persist(cert *score.Certificate) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create certificate dir: %w", err)
	}

	cav, err := EncodeCAV(cert)
	if err != nil {
		return fmt.Errorf("encode cav: %w", err)
	}
	js, err := json.MarshalIndent(cert, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	cavTmp, err := stage(w.dir, CAVName, cav)
	if err != nil {
		return err
	}
	jsonTmp, err := stage(w.dir, JSONName, append(js, '\n'))
	if err != nil {
		_ = os.Remove(cavTmp)
		return err
	}
	if err := os.Rename(cavTmp, filepath.Join(w.dir, CAVName)); err != nil {
		_ = os.Remove(cavTmp)
		_ = os.Remove(jsonTmp)
		return fmt.Errorf("commit %s: %w", CAVName, err)
	}
	if err := os.Rename(jsonTmp, filepath.Join(w.dir, JSONName)); err != nil {
		_ = os.Remove(jsonTmp)
		return fmt.Errorf("commit %s: %w", JSONName, err)
	}
	return nil
}

// stage writes data to a temp file next to the final destination and
// returns the temp path.
func stage(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	return f.Name(), nil
}

// EncodeCAV renders the line-oriented form: the header comment followed by
// one "KEY: value" pair per line. Values are JSON encodings, which keeps
// the form lossless for round-tripping.
func EncodeCAV(cert *score.Certificate) ([]byte, error) {
	values, err := cavValues(cert)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(headerLine)
	b.WriteByte('\n')
	for _, key := range cavKeys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(values[key])
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func cavValues(cert *score.Certificate) (map[string]string, error) {
	regions := make([][2]int, len(cert.Regions))
	for i, r := range cert.Regions {
		regions[i] = [2]int{r.Start, r.End}
	}
	fields := map[string]any{
		"AUX_TABLE_HASH":   cert.TableHash,
		"K":                cert.K,
		"SELECTED_REGIONS": regions,
		"SCORES":           cert.Scores,
		"COST":             cert.Cost,
		"PHI_ORIGINAL":     emptyAsList(cert.PhiOriginal),
		"PHI_CLONE":        emptyAsList(cert.PhiClone),
		"HEALTH_SCORE":     cert.HealthScore,
		"RECOMMENDATIONS":  emptyRecsAsList(cert.Recommendations),
		"TIMESTAMP":        cert.Timestamp,
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		out[k] = string(enc)
	}
	return out, nil
}

func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyRecsAsList(s []score.Recommendation) []score.Recommendation {
	if s == nil {
		return []score.Recommendation{}
	}
	return s
}
