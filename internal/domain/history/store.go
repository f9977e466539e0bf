package history

import "context"

// Store persists evaluation records.
type Store interface {
	// Append stores one or more records.
	Append(ctx context.Context, records ...Record) error
	// Recent returns up to limit of the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	// Close releases resources.
	Close() error
}
