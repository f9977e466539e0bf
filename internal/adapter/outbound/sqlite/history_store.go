// Package sqlite provides a SQLite-backed history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/silverline-robotics/interlock/internal/domain/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	request_id TEXT PRIMARY KEY,
	profile    TEXT NOT NULL DEFAULT '',
	subject    TEXT NOT NULL DEFAULT '',
	outcome    TEXT NOT NULL,
	reason     TEXT NOT NULL DEFAULT '',
	dry_run    INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
`

// HistoryStore implements history.Store on a SQLite database file.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (creating if needed) the database at path and
// bootstraps the schema.
func NewHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Append stores records.
func (s *HistoryStore) Append(ctx context.Context, records ...history.Record) error {
	const insert = `
INSERT INTO evaluations (request_id, profile, subject, outcome, reason, dry_run, latency_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, r := range records {
		dryRun := 0
		if r.DryRun {
			dryRun = 1
		}
		_, err := s.db.ExecContext(ctx, insert,
			r.RequestID, r.Profile, r.Subject, string(r.Outcome), r.Reason,
			dryRun, r.LatencyMs, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert evaluation %s: %w", r.RequestID, err)
		}
	}
	return nil
}

// Recent returns up to limit of the most recent records, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	const query = `
SELECT request_id, profile, subject, outcome, reason, dry_run, latency_ms, created_at
FROM evaluations
ORDER BY created_at DESC, request_id
LIMIT ?`

	if limit <= 0 {
		limit = defaultQueryLimit
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []history.Record
	for rows.Next() {
		var (
			r         history.Record
			outcome   string
			dryRun    int
			createdAt string
		)
		if err := rows.Scan(&r.RequestID, &r.Profile, &r.Subject, &outcome,
			&r.Reason, &dryRun, &r.LatencyMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		r.Outcome = history.Outcome(outcome)
		r.DryRun = dryRun != 0
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const defaultQueryLimit = 100

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Compile-time check that HistoryStore implements history.Store.
var _ history.Store = (*HistoryStore)(nil)
