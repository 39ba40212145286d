package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

func writeChange(ctx context.Context, tx *sql.Tx, ch audit.PendingChange) error {
	switch e := ch.Entity.(type) {
	case *scope.Client:
		if ch.Op == audit.OpInsert {
			return insertClient(ctx, tx, e.State())
		}
		return updateClient(ctx, tx, e.State())
	case *scope.Contract:
		if ch.Op == audit.OpInsert {
			return insertContract(ctx, tx, e.State())
		}
		return updateContract(ctx, tx, e.State())
	case *scope.Deliverable:
		if ch.Op == audit.OpInsert {
			return insertDeliverable(ctx, tx, e.State())
		}
		return updateDeliverable(ctx, tx, e.State())
	}
	return nil
}

func insertClient(ctx context.Context, tx *sql.Tx, st scope.ClientState) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO clients (id, name, contact_email, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.ContactEmail, string(st.Status), st.CreatedAt.UTC(), st.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert client %s: %w", st.ID, translate(err))
	}
	return nil
}

func updateClient(ctx context.Context, tx *sql.Tx, st scope.ClientState) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE clients SET name = ?, contact_email = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		st.Name, st.ContactEmail, string(st.Status), st.UpdatedAt.UTC(), st.ID,
	)
	return checkUpdate(res, err, "client", st.ID)
}

// Contracts and deliverables take the next position under their parent, so
// insert order is the read order.
func insertContract(ctx context.Context, tx *sql.Tx, st scope.ContractState) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO contracts (id, client_id, position, title, description, type, status, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM contracts WHERE client_id = ?), ?, ?, ?, ?, ?, ?)`,
		st.ID, st.ClientID, st.ClientID, st.Title, st.Description, string(st.Type), string(st.Status),
		st.CreatedAt.UTC(), st.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract %s: %w", st.ID, translate(err))
	}
	return nil
}

func updateContract(ctx context.Context, tx *sql.Tx, st scope.ContractState) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE contracts SET title = ?, description = ?, type = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		st.Title, st.Description, string(st.Type), string(st.Status), st.UpdatedAt.UTC(), st.ID,
	)
	return checkUpdate(res, err, "contract", st.ID)
}

func insertDeliverable(ctx context.Context, tx *sql.Tx, st scope.DeliverableState) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO deliverables (id, contract_id, position, title, description, status, due_date, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM deliverables WHERE contract_id = ?), ?, ?, ?, ?, ?, ?)`,
		st.ID, st.ContractID, st.ContractID, st.Title, st.Description, string(st.Status), dbTime(st.DueDate),
		st.CreatedAt.UTC(), st.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert deliverable %s: %w", st.ID, translate(err))
	}
	return nil
}

func updateDeliverable(ctx context.Context, tx *sql.Tx, st scope.DeliverableState) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE deliverables SET title = ?, description = ?, status = ?, due_date = ?, updated_at = ?
		WHERE id = ?`,
		st.Title, st.Description, string(st.Status), dbTime(st.DueDate), st.UpdatedAt.UTC(), st.ID,
	)
	return checkUpdate(res, err, "deliverable", st.ID)
}

func insertActivity(ctx context.Context, tx *sql.Tx, e *activity.Entry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO activity_log (id, entity_kind, entity_id, kind, description, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.EntityKind), e.EntityID, string(e.Kind), e.Description, e.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", translate(err))
	}
	return nil
}

func checkUpdate(res sql.Result, err error, kind, id string) error {
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, translate(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}
