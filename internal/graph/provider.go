// Package graph defines the read-only person/family graph the validation
// rules and duplicate searches run against, plus an in-memory implementation.
package graph

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

import (
	"context"

	id "datencheck/pkg/domain"
)

// Provider gives access to one or more family trees.
//
// Error Contract:
// - Lookups of a single record return (nil, nil) when the record does not exist
// - List methods return an empty slice when nothing matches
// - Errors are reserved for infrastructure failures
type Provider interface {
	Person(ctx context.Context, tree id.TreeID, xref id.Xref) (*Person, error)
	Family(ctx context.Context, tree id.TreeID, xref id.Xref) (*Family, error)

	// ParentFamilies returns the families the person is a child of.
	ParentFamilies(ctx context.Context, tree id.TreeID, p *Person) ([]*Family, error)
	// SpouseFamilies returns the families the person is a spouse in.
	SpouseFamilies(ctx context.Context, tree id.TreeID, p *Person) ([]*Family, error)
	// Children returns the family's children in record order.
	Children(ctx context.Context, tree id.TreeID, f *Family) ([]*Person, error)
	PlaceCoordinates(ctx context.Context, tree id.TreeID, place string) (*Coordinates, error)

	// FindPersonsByName matches fragment case-insensitively against every
	// surname and full name of each person.
	FindPersonsByName(ctx context.Context, tree id.TreeID, fragment string) ([]*Person, error)
	// FamiliesBySpouses returns families with the given husband and wife. An
	// empty xref matches any spouse; both empty returns nothing.
	FamiliesBySpouses(ctx context.Context, tree id.TreeID, husband, wife id.Xref) ([]*Family, error)
	// PersonXrefs pages through all person xrefs in ascending order.
	PersonXrefs(ctx context.Context, tree id.TreeID, offset, limit int) ([]id.Xref, error)
	Sources(ctx context.Context, tree id.TreeID) ([]*Source, error)
	Repositories(ctx context.Context, tree id.TreeID) ([]*Repository, error)
}
