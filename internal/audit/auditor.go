// Package audit derives activity log entries from the pending changes of a
// unit of work.
package audit

import (
	"fmt"
	"time"

	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
)

// Auditor turns pending changes into activity entries. It never fails:
// changes it cannot classify are skipped.
type Auditor struct {
	now func() time.Time
}

// New returns an auditor using the wall clock.
func New() *Auditor {
	return &Auditor{now: func() time.Time { return time.Now().UTC() }}
}

// NewWithClock returns an auditor that stamps entries with now().
func NewWithClock(now func() time.Time) *Auditor {
	return &Auditor{now: now}
}

// Derive returns at most one entry per change, in input order. It has no side
// effects, so running it again over the same input yields equivalent entries.
func (a *Auditor) Derive(changes []PendingChange) []*activity.Entry {
	var entries []*activity.Entry
	for _, ch := range changes {
		entry := a.derive(ch)
		if entry == nil {
			continue
		}
		for _, note := range ch.Notes {
			entry.AppendDescription(entry.OccurredAt, note)
		}
		entries = append(entries, entry)
	}
	return entries
}

func (a *Auditor) derive(ch PendingChange) *activity.Entry {
	switch e := ch.Entity.(type) {
	case *scope.Client:
		if e == nil {
			return nil
		}
		return a.client(ch, e)
	case *scope.Contract:
		if e == nil {
			return nil
		}
		return a.owned(ch, activity.EntityContract, e.ID(), e.Title(), string(e.Status()))
	case *scope.Deliverable:
		if e == nil {
			return nil
		}
		return a.owned(ch, activity.EntityDeliverable, e.ID(), e.Title(), string(e.Status()))
	default:
		return nil
	}
}

func (a *Auditor) client(ch PendingChange, c *scope.Client) *activity.Entry {
	switch ch.Op {
	case OpInsert:
		return a.entry(activity.EntityClient, c.ID(), activity.KindCreated, "Client '%s' created", c.Name())
	case OpUpdate:
		fields := ch.Fields.Substantive()
		switch {
		case len(fields) == 0:
			return nil
		case fields.Has(FieldName) || fields.Has(FieldContactEmail):
			return a.entry(activity.EntityClient, c.ID(), activity.KindUpdated, "Client '%s' updated", c.Name())
		default:
			return a.entry(activity.EntityClient, c.ID(), activity.KindStatusChanged,
				"Client '%s' status changed to %s", c.Name(), c.Status())
		}
	}
	return nil
}

// owned handles contracts and deliverables. Every update is logged as a status
// change, including one that only touched updated_at.
func (a *Auditor) owned(ch PendingChange, kind activity.EntityKind, id, title, status string) *activity.Entry {
	switch ch.Op {
	case OpInsert:
		return a.entry(kind, id, activity.KindCreated, "%s '%s' created", kind, title)
	case OpUpdate:
		return a.entry(kind, id, activity.KindStatusChanged, "%s '%s' status changed to %s", kind, title, status)
	}
	return nil
}

func (a *Auditor) entry(kind activity.EntityKind, id string, k activity.Kind, format string, args ...any) *activity.Entry {
	e, err := activity.NewAt(a.now(), kind, id, k, fmt.Sprintf(format, args...))
	if err != nil {
		return nil
	}
	return e
}
