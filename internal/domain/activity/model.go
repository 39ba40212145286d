package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/scopetrack/internal/domain/scope"
)

// EntityKind names the kind of aggregate an entry describes.
type EntityKind string

const (
	EntityClient      EntityKind = "Client"
	EntityContract    EntityKind = "Contract"
	EntityDeliverable EntityKind = "Deliverable"
)

// Kind is the type of activity event.
type Kind string

const (
	KindCreated       Kind = "Created"
	KindUpdated       Kind = "Updated"
	KindStatusChanged Kind = "StatusChanged"
)

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityClient, EntityContract, EntityDeliverable:
		return true
	}
	return false
}

// Valid reports whether k is a known activity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindCreated, KindUpdated, KindStatusChanged:
		return true
	}
	return false
}

// ParseEntityKind accepts an entity kind in any case.
func ParseEntityKind(raw string) (EntityKind, error) {
	for _, k := range []EntityKind{EntityClient, EntityContract, EntityDeliverable} {
		if strings.EqualFold(strings.TrimSpace(raw), string(k)) {
			return k, nil
		}
	}
	return "", invalid("invalid entity kind %q", raw)
}

// Entry is an audit fact: something happened to an entity at a point in time.
// Entries are written once and never updated or deleted.
type Entry struct {
	ID          string     `json:"id"`
	EntityKind  EntityKind `json:"entity_kind"`
	EntityID    string     `json:"entity_id"`
	Kind        Kind       `json:"kind"`
	Description string     `json:"description"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// New creates an entry stamped with the current UTC time.
func New(entityKind EntityKind, entityID string, kind Kind, description string) (*Entry, error) {
	return NewAt(time.Now().UTC(), entityKind, entityID, kind, description)
}

// NewAt creates an entry stamped with occurredAt.
func NewAt(occurredAt time.Time, entityKind EntityKind, entityID string, kind Kind, description string) (*Entry, error) {
	if !entityKind.Valid() {
		return nil, invalid("invalid entity kind %q", entityKind)
	}
	if strings.TrimSpace(entityID) == "" {
		return nil, invalid("entity id cannot be empty")
	}
	if !kind.Valid() {
		return nil, invalid("invalid activity kind %q", kind)
	}
	if strings.TrimSpace(description) == "" {
		return nil, invalid("activity description cannot be blank")
	}
	return &Entry{
		ID:          uuid.NewString(),
		EntityKind:  entityKind,
		EntityID:    entityID,
		Kind:        kind,
		Description: description,
		OccurredAt:  occurredAt.UTC(),
	}, nil
}

// AppendDescription adds a timestamped note on a new line. Blank notes are ignored.
func (e *Entry) AppendDescription(at time.Time, note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	e.Description += fmt.Sprintf("\n[%s] %s", at.UTC().Format(time.RFC3339), note)
}

func invalid(format string, args ...any) error {
	return &scope.Error{Kind: scope.ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}
