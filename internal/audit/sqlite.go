// Package audit persists refuse_and_log policy flags to SQLite so injection
// attempts can be reviewed after the fact.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS audit_records (
	id            TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL,
	provider      TEXT NOT NULL DEFAULT '',
	flag_code     TEXT NOT NULL,
	action        TEXT NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	guard_excerpt TEXT NOT NULL DEFAULT '',
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_run ON audit_records(run_id);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_records(created_at);
`

// Open opens (creating if needed) the audit database at path and runs the
// schema migration.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit schema: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
