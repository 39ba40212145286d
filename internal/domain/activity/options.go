package activity

// ListOptions provides filtering options for listing activity.
// Zero values mean "any". Results are ordered by occurrence, oldest first,
// unless Newest is set.
type ListOptions struct {
	EntityKind *EntityKind
	EntityID   string
	Kind       *Kind
	Newest     bool
	Limit      int
	Offset     int
}
