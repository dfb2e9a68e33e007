package shortlink

import "context"

// Repository defines the storage operations for short link entries.
//
// Implementations must make Create an atomic check-and-insert (at most one
// winner per code under concurrent creation) and AppendClick an atomic
// append that preserves insertion order per code. Entries are never deleted.
type Repository interface {
	// Create inserts a new entry. Returns ErrCodeInUse if the code is taken.
	Create(ctx context.Context, entry *Entry) error

	// Get returns the entry for a code, or ErrNotFound. The returned entry
	// is a snapshot; mutating it does not affect the store.
	Get(ctx context.Context, code string) (*Entry, error)

	// List returns a snapshot of every entry. Order is not part of the
	// contract.
	List(ctx context.Context) ([]*Entry, error)

	// AppendClick records a click against an entry, or returns ErrNotFound.
	AppendClick(ctx context.Context, code string, click Click) error
}
