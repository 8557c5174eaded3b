package store

// schemaVersionV1 is the current certificate-history schema.
const schemaVersionV1 = 1

// schemaV1 keeps one row per scoring run: the queryable summary columns
// plus the full certificate JSON payload. Saving an existing certificate
// ID is last-write-wins; there is no other uniqueness constraint.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS certificates (
	id             TEXT PRIMARY KEY,
	table_hash     TEXT NOT NULL,
	k              INTEGER NOT NULL,
	score          REAL NOT NULL,
	cost           REAL NOT NULL,
	health_score   REAL NOT NULL,
	error_detected INTEGER NOT NULL DEFAULT 0,
	payload        BLOB NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_certificates_created_at ON certificates(created_at);
`
