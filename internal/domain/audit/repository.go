package audit

import "context"

type Repository interface {
	// Append-only; entries are never updated.
	Create(ctx context.Context, e *Entry) error

	// Entries for a credit, oldest first.
	ListByCreditID(ctx context.Context, creditID uint64) ([]Entry, error)
}
