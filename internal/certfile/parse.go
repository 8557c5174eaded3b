package certfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splicecert/internal/compose"
	"splicecert/internal/score"
)

// ParseCAV decodes the line-oriented form back into a certificate. The
// .cav form does not carry the certificate ID, so the parsed record has an
// empty ID; every other field round-trips losslessly.
func ParseCAV(data []byte) (*score.Certificate, error) {
	values := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("malformed line %q", line)
		}
		values[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read cav: %w", err)
	}
	for _, key := range cavKeys {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("missing key %s", key)
		}
	}

	cert := &score.Certificate{}
	var regions [][2]int
	decode := map[string]any{
		"AUX_TABLE_HASH":   &cert.TableHash,
		"K":                &cert.K,
		"SELECTED_REGIONS": &regions,
		"SCORES":           &cert.Scores,
		"COST":             &cert.Cost,
		"PHI_ORIGINAL":     &cert.PhiOriginal,
		"PHI_CLONE":        &cert.PhiClone,
		"HEALTH_SCORE":     &cert.HealthScore,
		"RECOMMENDATIONS":  &cert.Recommendations,
		"TIMESTAMP":        &cert.Timestamp,
	}
	for key, dst := range decode {
		if err := json.Unmarshal([]byte(values[key]), dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	for _, p := range regions {
		cert.Regions = append(cert.Regions, compose.Region{Start: p[0], End: p[1]})
	}
	return cert, nil
}

// ReadCAV loads and parses the .cav artifact from dir.
func ReadCAV(dir string) (*score.Certificate, error) {
	data, err := os.ReadFile(filepath.Join(dir, CAVName))
	if err != nil {
		return nil, fmt.Errorf("read cav: %w", err)
	}
	return ParseCAV(data)
}

// ReadJSON loads and parses the JSON artifact from dir.
func ReadJSON(dir string) (*score.Certificate, error) {
	data, err := os.ReadFile(filepath.Join(dir, JSONName))
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	var cert score.Certificate
	if err := json.Unmarshal(data, &cert); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &cert, nil
}
