package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/silverline-robotics/interlock/internal/domain/history"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "interlock.db"))
	if err != nil {
		t.Fatalf("NewHistoryStore failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func TestSQLiteHistoryStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []history.Record{
		{RequestID: "r1", Profile: "drive", Subject: "robot", Outcome: history.OutcomeExecuted, LatencyMs: 3, CreatedAt: base},
		{RequestID: "r2", Profile: "drive", Subject: "robot", Outcome: history.OutcomeBlocked, Reason: "battery too low", CreatedAt: base.Add(time.Second)},
		{RequestID: "r3", Profile: "shutdown", Subject: "robot", Outcome: history.OutcomeSimulated, DryRun: true, CreatedAt: base.Add(2 * time.Second)},
	}
	if err := store.Append(ctx, records...); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent returned %d records, want 3", len(recent))
	}

	// Newest first.
	if recent[0].RequestID != "r3" {
		t.Errorf("first record = %s, want r3", recent[0].RequestID)
	}
	if !recent[0].DryRun {
		t.Error("dry_run not round-tripped")
	}
	if recent[1].Reason != "battery too low" {
		t.Errorf("Reason = %q, want violation message round-tripped", recent[1].Reason)
	}
	if !recent[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", recent[2].CreatedAt, base)
	}
}

func TestSQLiteHistoryStoreRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := history.Record{
			RequestID: string(rune('a' + i)),
			Outcome:   history.OutcomeExecuted,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Recent returned %d records, want 2", len(recent))
	}
}

func TestSQLiteHistoryStoreEmpty(t *testing.T) {
	store := newTestStore(t)

	recent, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Recent returned %d records from empty store, want 0", len(recent))
	}
}
