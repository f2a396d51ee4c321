package ignored

import (
	"context"

	id "datencheck/pkg/domain"
)

// Store persists ignore decisions.
//
// Error Contract:
//   - IgnoredCodes returns an empty, non-nil set when nothing is ignored.
//   - Unignore reports false, nil when no record matched.
//   - A missing table is reported as a wrapped sentinel.ErrSchemaMissing.
//   - Other infrastructure failures are wrapped with context.
type Store interface {
	IgnoredCodes(ctx context.Context, tree id.TreeID, xref id.Xref) (Codes, error)
	Ignore(ctx context.Context, rec Record) error
	Unignore(ctx context.Context, tree id.TreeID, xref id.Xref, code string) (bool, error)
	// List returns the tree's records, newest first.
	List(ctx context.Context, tree id.TreeID) ([]Record, error)
}

// BatchReader is implemented by stores that can load many persons' codes in
// one round trip. Missing persons map to empty sets.
type BatchReader interface {
	IgnoredCodesBatch(ctx context.Context, tree id.TreeID, xrefs []id.Xref) (map[id.Xref]Codes, error)
}
