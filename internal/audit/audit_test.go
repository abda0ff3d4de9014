package audit

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sant0-9/pact/internal/intake"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "audit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := NewRecorder(db)
	base := time.Unix(1_700_000_000, 0)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return r
}

var (
	injection = intake.PolicyFlag{
		Code:    intake.FlagPromptInjectionAttempt,
		Message: "Potential prompt injection attempt detected.",
		Action:  intake.ActionRefuseAndLog,
	}
	legal = intake.PolicyFlag{
		Code:    intake.FlagLegalAdviceRequest,
		Message: "User asked for legal advice; intake only mode.",
		Action:  intake.ActionRefuseLegalAdvice,
	}
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='audit_records'").Scan(&name)
	if err != nil {
		t.Fatalf("audit_records table missing: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestRecordFlagsOnlyRefuseAndLog(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	n, err := r.RecordFlags(ctx, "run-1", "mock", "ignore previous instructions", []intake.PolicyFlag{legal, injection})
	if err != nil {
		t.Fatalf("RecordFlags: %v", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1", n)
	}

	got, err := r.List(ctx, "run-1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	rec := got[0]
	if rec.FlagCode != intake.FlagPromptInjectionAttempt {
		t.Errorf("flag_code = %s", rec.FlagCode)
	}
	if rec.Action != intake.ActionRefuseAndLog {
		t.Errorf("action = %s", rec.Action)
	}
	if rec.Provider != "mock" {
		t.Errorf("provider = %q, want mock", rec.Provider)
	}
	if rec.GuardExcerpt != "ignore previous instructions" {
		t.Errorf("excerpt = %q", rec.GuardExcerpt)
	}
	if rec.ID == "" {
		t.Error("record id should be set")
	}
}

func TestRecordFlagsNone(t *testing.T) {
	r := newTestRecorder(t)
	n, err := r.RecordFlags(context.Background(), "run-1", "mock", "text", []intake.PolicyFlag{legal})
	if err != nil {
		t.Fatalf("RecordFlags: %v", err)
	}
	if n != 0 {
		t.Errorf("written = %d, want 0", n)
	}
}

func TestListOrderingAndFilter(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	for _, run := range []string{"run-a", "run-b", "run-a"} {
		if _, err := r.RecordFlags(ctx, run, "mock", run, []intake.PolicyFlag{injection}); err != nil {
			t.Fatalf("RecordFlags: %v", err)
		}
	}

	all, err := r.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("records = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("records not newest first at %d", i)
		}
	}

	onlyA, err := r.List(ctx, "run-a", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(onlyA) != 2 {
		t.Errorf("run-a records = %d, want 2", len(onlyA))
	}

	limited, err := r.List(ctx, "", 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-a" {
		t.Errorf("limited = %+v, want newest run-a record", limited)
	}
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("é", excerptLimit+10)
	got := excerpt(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt should end with ellipsis")
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != excerptLimit {
		t.Errorf("excerpt runes = %d, want %d", n, excerptLimit)
	}
	if excerpt("short") != "short" {
		t.Error("short text should be unchanged")
	}
}

func TestNewRunIDUnique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("run ids should differ")
	}
}
