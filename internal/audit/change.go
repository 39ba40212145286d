package audit

import "maps"

// Operation is the pending persistence operation for an entity.
type Operation string

const (
	OpInsert Operation = "Insert"
	OpUpdate Operation = "Update"
)

// Field names a persisted attribute of a tracked entity.
type Field string

const (
	FieldName         Field = "name"
	FieldContactEmail Field = "contact_email"
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldType         Field = "type"
	FieldStatus       Field = "status"
	FieldDueDate      Field = "due_date"
	FieldUpdatedAt    Field = "updated_at"
)

// FieldSet is a set of changed fields.
type FieldSet map[Field]struct{}

// NewFieldSet returns a set holding fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Substantive returns the set without bookkeeping timestamps.
func (s FieldSet) Substantive() FieldSet {
	out := maps.Clone(s)
	if out == nil {
		return FieldSet{}
	}
	delete(out, FieldUpdatedAt)
	return out
}

// PendingChange is one entity awaiting commit. Entity is a *scope.Client,
// *scope.Contract or *scope.Deliverable; anything else is ignored by the
// auditor. Fields is only meaningful for updates. Notes are appended to the
// entry derived for the entity.
type PendingChange struct {
	Op     Operation
	Entity any
	Fields FieldSet
	Notes  []string
}
