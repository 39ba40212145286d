package sqlite

import (
	"time"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/scope"
)

// tracked is an entity known to a unit of work. snapshot holds the state last
// read from or written to the database; it is nil while the entity is pending
// insert.
type tracked struct {
	id       string
	entity   any
	snapshot any
}

func (t *tracked) persisted() bool { return t.snapshot != nil }

func stateOf(entity any) any {
	switch e := entity.(type) {
	case *scope.Client:
		return e.State()
	case *scope.Contract:
		return e.State()
	case *scope.Deliverable:
		return e.State()
	}
	return nil
}

// insertRank orders inserts so parents are written before children.
func insertRank(entity any) int {
	switch entity.(type) {
	case *scope.Client:
		return 0
	case *scope.Contract:
		return 1
	default:
		return 2
	}
}

// diff returns the fields that differ between two states of the same kind.
func diff(before, after any) audit.FieldSet {
	fields := audit.FieldSet{}
	mark := func(changed bool, f audit.Field) {
		if changed {
			fields[f] = struct{}{}
		}
	}
	switch b := before.(type) {
	case scope.ClientState:
		a := after.(scope.ClientState)
		mark(b.Name != a.Name, audit.FieldName)
		mark(b.ContactEmail != a.ContactEmail, audit.FieldContactEmail)
		mark(b.Status != a.Status, audit.FieldStatus)
		mark(!b.UpdatedAt.Equal(a.UpdatedAt), audit.FieldUpdatedAt)
	case scope.ContractState:
		a := after.(scope.ContractState)
		mark(b.Title != a.Title, audit.FieldTitle)
		mark(b.Description != a.Description, audit.FieldDescription)
		mark(b.Type != a.Type, audit.FieldType)
		mark(b.Status != a.Status, audit.FieldStatus)
		mark(!b.UpdatedAt.Equal(a.UpdatedAt), audit.FieldUpdatedAt)
	case scope.DeliverableState:
		a := after.(scope.DeliverableState)
		mark(b.Title != a.Title, audit.FieldTitle)
		mark(b.Description != a.Description, audit.FieldDescription)
		mark(b.Status != a.Status, audit.FieldStatus)
		mark(!sameTime(b.DueDate, a.DueDate), audit.FieldDueDate)
		mark(!b.UpdatedAt.Equal(a.UpdatedAt), audit.FieldUpdatedAt)
	}
	return fields
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
