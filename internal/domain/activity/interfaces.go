package activity

import "context"

// Repository provides read access to the activity log. Entries are written
// only by the unit of work commit.
type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
	// Exists reports whether an entity of the given kind is stored under id.
	Exists(ctx context.Context, kind EntityKind, id string) (bool, error)
}
