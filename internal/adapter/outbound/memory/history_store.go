// Package memory provides in-memory implementations of outbound ports.
package memory

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/silverline-robotics/interlock/internal/domain/history"
)

const defaultRecentCap = 1000

// HistoryStore implements history.Store with a bounded in-memory ring buffer.
// An optional writer receives every record as a JSON line, for operators who
// want a plain-text trail without a database.
type HistoryStore struct {
	mu      sync.Mutex
	encoder *json.Encoder // nil when no writer configured
	recent  []history.Record
	cap     int
}

// resolveCapacity returns the first positive capacity value, or defaultRecentCap.
func resolveCapacity(capacity ...int) int {
	if len(capacity) > 0 && capacity[0] > 0 {
		return capacity[0]
	}
	return defaultRecentCap
}

// NewHistoryStore creates a history store keeping records in memory only.
// An optional capacity parameter sets the ring buffer size (default 1000).
func NewHistoryStore(capacity ...int) *HistoryStore {
	c := resolveCapacity(capacity...)
	return &HistoryStore{
		recent: make([]history.Record, 0, c),
		cap:    c,
	}
}

// NewHistoryStoreWithWriter creates a history store that also writes each
// record as a JSON line to w. An optional capacity parameter sets the ring
// buffer size (default 1000).
func NewHistoryStoreWithWriter(w io.Writer, capacity ...int) *HistoryStore {
	s := NewHistoryStore(capacity...)
	s.encoder = json.NewEncoder(w)
	return s
}

// Append stores records in the ring buffer and, when a writer is configured,
// emits them as JSON lines.
func (s *HistoryStore) Append(ctx context.Context, records ...history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if s.encoder != nil {
			if err := s.encoder.Encode(r); err != nil {
				return err
			}
		}
		if len(s.recent) >= s.cap {
			// Shift left, drop oldest.
			copy(s.recent, s.recent[1:])
			s.recent[len(s.recent)-1] = r
		} else {
			s.recent = append(s.recent, r)
		}
	}
	return nil
}

// Recent returns up to limit of the most recent records, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]history.Record, 0, limit)
	for i := len(s.recent) - 1; i >= len(s.recent)-limit; i-- {
		out = append(out, s.recent[i])
	}
	return out, nil
}

// Close releases resources. No-op for the in-memory store.
func (s *HistoryStore) Close() error {
	return nil
}

// Compile-time check that HistoryStore implements history.Store.
var _ history.Store = (*HistoryStore)(nil)
