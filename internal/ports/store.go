package ports

import (
	"context"

	"tradeJournal/internal/domain"
)

// TradeStore defines the interface for persisting and retrieving the journal's
// trade collection. The store owns the canonical list; the core only produces
// and consumes transient in-memory slices.
//
// The store enforces no uniqueness constraint and provides no read-modify-write
// locking: concurrent writers are last-write-wins, and callers that care about
// consistency must serialize imports themselves.
type TradeStore interface {
	// SaveAll appends the given records to the stored collection and returns
	// the number of records saved. Either all records are saved or none are.
	SaveAll(ctx context.Context, records []domain.TradeRecord) (int, error)
	// GetAll retrieves the full trade collection in insertion order.
	// An empty collection is returned as an empty slice, not an error.
	GetAll(ctx context.Context) ([]domain.TradeRecord, error)
	// ClearAll removes every record from the collection.
	ClearAll(ctx context.Context) error
}
