// Package store keeps the durable history of scoring runs in SQLite.
// One row per certificate; the full record round-trips through the JSON
// payload column while the summary columns stay queryable.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"splicecert/internal/score"
)

// DefaultDBPath is where the CLI keeps the certificate history.
const DefaultDBPath = ".splicecert/history.db"

// ErrNotFound is returned when a certificate ID has no row.
var ErrNotFound = errors.New("certificate not found")

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// Summary is the queryable digest of one stored certificate.
type Summary struct {
	ID            string  `json:"id"`
	TableHash     string  `json:"table_hash"`
	K             int     `json:"k"`
	Score         float64 `json:"score"`
	Cost          float64 `json:"cost"`
	HealthScore   float64 `json:"health_score"`
	ErrorDetected bool    `json:"error_detected"`
	CreatedAt     string  `json:"created_at"`
}

// Store implements the certificate history with SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .splicecert) if it does not exist.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersionV1); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersionV1 {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Save records a certificate. Saving the same certificate ID again
// replaces the previous row (last write wins).
func (s *Store) Save(cert *score.Certificate, errorDetected bool) error {
	payload, err := json.Marshal(cert)
	if err != nil {
		return fmt.Errorf("encode certificate: %w", err)
	}
	var value float64
	if len(cert.Scores) > 0 {
		value = cert.Scores[0]
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO certificates
			(id, table_hash, k, score, cost, health_score, error_detected, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cert.ID, cert.TableHash, cert.K, value, cert.Cost, cert.HealthScore,
		boolToInt(errorDetected), payload, nowUTC())
	if err != nil {
		return fmt.Errorf("save certificate: %w", err)
	}
	return nil
}

// Get returns the full certificate for id, or ErrNotFound.
func (s *Store) Get(id string) (*score.Certificate, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM certificates WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	var cert score.Certificate
	if err := json.Unmarshal(payload, &cert); err != nil {
		return nil, fmt.Errorf("decode certificate: %w", err)
	}
	return &cert, nil
}

// List returns certificate summaries, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Summary, error) {
	q := `
		SELECT id, table_hash, k, score, cost, health_score, error_detected, created_at
		FROM certificates ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var errDetected int
		if err := rows.Scan(&sum.ID, &sum.TableHash, &sum.K, &sum.Score, &sum.Cost,
			&sum.HealthScore, &errDetected, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan certificate row: %w", err)
		}
		sum.ErrorDetected = errDetected != 0
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certificates: %w", err)
	}
	return out, nil
}

// Prune deletes all but the newest keep rows and reports how many were
// removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(`
		DELETE FROM certificates WHERE id NOT IN (
			SELECT id FROM certificates ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune certificates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune certificates: %w", err)
	}
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
