package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/pact/internal/intake"
)

// excerptLimit caps the stored guard text in runes.
const excerptLimit = 200

// DefaultListLimit is used when List is called with limit <= 0.
const DefaultListLimit = 50

// Record is one stored policy flag.
type Record struct {
	ID           string
	RunID        string
	Provider     string
	FlagCode     intake.FlagCode
	Action       intake.Action
	Message      string
	GuardExcerpt string
	CreatedAt    time.Time
}

// Recorder writes and reads audit records. It does not own the database.
type Recorder struct {
	db  *sql.DB
	now func() time.Time
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

// NewRunID returns a fresh identifier for one pipeline run.
func NewRunID() string {
	return uuid.NewString()
}

// RecordFlags stores every refuse_and_log flag of a run and returns how many
// rows were written. Other flags are ignored.
func (r *Recorder) RecordFlags(ctx context.Context, runID, provider, guardText string, flags []intake.PolicyFlag) (int, error) {
	const q = `INSERT INTO audit_records (id, run_id, provider, flag_code, action, message, guard_excerpt, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	written := 0
	for _, f := range flags {
		if f.Action != intake.ActionRefuseAndLog {
			continue
		}
		_, err := r.db.ExecContext(ctx, q,
			uuid.NewString(),
			runID,
			provider,
			string(f.Code),
			string(f.Action),
			f.Message,
			excerpt(guardText),
			r.now().UnixNano(),
		)
		if err != nil {
			return written, fmt.Errorf("record audit flag: %w", err)
		}
		written++
	}
	return written, nil
}

// List returns records newest first. An empty runID lists every run.
func (r *Recorder) List(ctx context.Context, runID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := `SELECT id, run_id, provider, flag_code, action, message, guard_excerpt, created_at
FROM audit_records`
	args := []any{}
	if runID != "" {
		q += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			code      string
			action    string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Provider, &code, &action,
			&rec.Message, &rec.GuardExcerpt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.FlagCode = intake.FlagCode(code)
		rec.Action = intake.Action(action)
		rec.CreatedAt = time.Unix(0, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "..."
}
