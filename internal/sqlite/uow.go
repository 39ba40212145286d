package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// PreCommitHook derives activity entries from the changes about to be
// committed. It runs once per commit attempt, before anything is written.
type PreCommitHook func(changes []audit.PendingChange) []*activity.Entry

// UnitOfWork implements repository.UnitOfWork for SQLite. It is not safe for
// concurrent use; open one per request.
type UnitOfWork struct {
	db     *DB
	hook   PreCommitHook
	logger *slog.Logger

	byID  map[string]*tracked
	order []*tracked
	notes map[string][]string
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

func newUnitOfWork(db *DB, hook PreCommitHook, logger *slog.Logger) *UnitOfWork {
	return &UnitOfWork{
		db:     db,
		hook:   hook,
		logger: logger,
		byID:   make(map[string]*tracked),
		notes:  make(map[string][]string),
	}
}

// AddClient stages a new client, and any contracts it already holds, for insert.
func (u *UnitOfWork) AddClient(client *scope.Client) {
	if client != nil {
		u.track(client.ID(), client, false)
	}
}

// AddContract stages a new contract for insert.
func (u *UnitOfWork) AddContract(contract *scope.Contract) {
	if contract != nil {
		u.track(contract.ID(), contract, false)
	}
}

// AddDeliverable stages a new deliverable for insert.
func (u *UnitOfWork) AddDeliverable(deliverable *scope.Deliverable) {
	if deliverable != nil {
		u.track(deliverable.ID(), deliverable, false)
	}
}

// Annotate attaches a note to the entry derived for entityID in the next commit.
func (u *UnitOfWork) Annotate(entityID, note string) {
	if strings.TrimSpace(note) == "" {
		return
	}
	u.notes[entityID] = append(u.notes[entityID], note)
}

// PendingChanges lists inserts (clients, then contracts, then deliverables,
// each in staging order) followed by updates in load order. Children added to
// a tracked aggregate are picked up as inserts.
func (u *UnitOfWork) PendingChanges() []audit.PendingChange {
	u.discover()

	var inserts [3][]audit.PendingChange
	var updates []audit.PendingChange
	for _, t := range u.order {
		if !t.persisted() {
			rank := insertRank(t.entity)
			inserts[rank] = append(inserts[rank], audit.PendingChange{
				Op:     audit.OpInsert,
				Entity: t.entity,
				Notes:  u.notes[t.id],
			})
			continue
		}
		fields := diff(t.snapshot, stateOf(t.entity))
		if len(fields) == 0 {
			continue
		}
		updates = append(updates, audit.PendingChange{
			Op:     audit.OpUpdate,
			Entity: t.entity,
			Fields: fields,
			Notes:  u.notes[t.id],
		})
	}

	var changes []audit.PendingChange
	for _, group := range inserts {
		changes = append(changes, group...)
	}
	return append(changes, updates...)
}

// Commit writes all pending changes and the entries derived by the pre-commit
// hook in one transaction. A cancelled context aborts before
// anything is written. On failure nothing is persisted and the pending state
// is kept, so a retry derives its entries again.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	changes := u.PendingChanges()
	var entries []*activity.Entry
	if u.hook != nil {
		entries = u.hook(changes)
	}
	if len(changes) == 0 && len(entries) == 0 {
		return nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin commit: %w", err)
	}
	defer tx.Rollback()

	for _, ch := range changes {
		if err := writeChange(ctx, tx, ch); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if err := insertActivity(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	u.accept()
	u.logger.Debug("unit of work committed", "changes", len(changes), "activity", len(entries))
	return nil
}

// accept marks the current state of every tracked entity as persisted.
func (u *UnitOfWork) accept() {
	for _, t := range u.order {
		t.snapshot = stateOf(t.entity)
	}
	u.notes = make(map[string][]string)
}

func (u *UnitOfWork) track(id string, entity any, persisted bool) *tracked {
	if t, ok := u.byID[id]; ok {
		return t
	}
	t := &tracked{id: id, entity: entity}
	if persisted {
		t.snapshot = stateOf(entity)
	}
	u.byID[id] = t
	u.order = append(u.order, t)
	return t
}

// discover tracks children reachable from tracked aggregates. The loop sees
// entries appended during iteration, so grandchildren are found too.
func (u *UnitOfWork) discover() {
	for i := 0; i < len(u.order); i++ {
		switch e := u.order[i].entity.(type) {
		case *scope.Client:
			for _, c := range e.Contracts() {
				u.track(c.ID(), c, false)
			}
		case *scope.Contract:
			for _, d := range e.Deliverables() {
				u.track(d.ID(), d, false)
			}
		}
	}
}
