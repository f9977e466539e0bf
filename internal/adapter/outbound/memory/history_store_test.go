package memory

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/silverline-robotics/interlock/internal/domain/history"
)

func record(id string, outcome history.Outcome) history.Record {
	return history.Record{
		RequestID: id,
		Profile:   "drive",
		Outcome:   outcome,
		CreatedAt: time.Now().UTC(),
	}
}

func TestHistoryStoreAppendAndRecent(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	if err := store.Append(ctx,
		record("r1", history.OutcomeExecuted),
		record("r2", history.OutcomeBlocked),
		record("r3", history.OutcomeSimulated),
	); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(recent))
	}
	if recent[0].RequestID != "r3" || recent[1].RequestID != "r2" {
		t.Errorf("Recent order = [%s, %s], want newest first [r3, r2]",
			recent[0].RequestID, recent[1].RequestID)
	}
}

func TestHistoryStoreCapacityEviction(t *testing.T) {
	store := NewHistoryStore(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Append(ctx, record(fmt.Sprintf("r%d", i), history.OutcomeExecuted)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("store holds %d records, want 3 (bounded)", len(recent))
	}
	if recent[0].RequestID != "r5" || recent[2].RequestID != "r3" {
		t.Errorf("oldest records not evicted: got [%s .. %s], want [r5 .. r3]",
			recent[0].RequestID, recent[2].RequestID)
	}
}

func TestHistoryStoreWriterEmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	store := NewHistoryStoreWithWriter(&buf)
	ctx := context.Background()

	if err := store.Append(ctx,
		record("r1", history.OutcomeBlocked),
		record("r2", history.OutcomeRaised),
	); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		var rec history.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("writer received %d JSON lines, want 2", lines)
	}
}
