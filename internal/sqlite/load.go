package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// Client returns the client aggregate with its contracts and their
// deliverables in insertion order.
func (u *UnitOfWork) Client(ctx context.Context, id string) (*scope.Client, error) {
	if t, ok := u.byID[id]; ok {
		if c, ok := t.entity.(*scope.Client); ok {
			return c, nil
		}
		return nil, fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
	}

	client, err := loadClient(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	u.track(client.ID(), client, true)
	for _, c := range client.Contracts() {
		u.track(c.ID(), c, true)
		for _, d := range c.Deliverables() {
			u.track(d.ID(), d, true)
		}
	}
	return client, nil
}

// Contract returns a contract with its deliverables. Its client aggregate is
// loaded as well.
func (u *UnitOfWork) Contract(ctx context.Context, id string) (*scope.Contract, error) {
	if _, ok := u.byID[id]; !ok {
		var clientID string
		err := u.db.QueryRowContext(ctx, `SELECT client_id FROM contracts WHERE id = ?`, id).Scan(&clientID)
		if err := notFound(err, "contract", id); err != nil {
			return nil, err
		}
		if _, err := u.Client(ctx, clientID); err != nil {
			return nil, err
		}
	}
	if t, ok := u.byID[id]; ok {
		if c, ok := t.entity.(*scope.Contract); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("contract %s: %w", id, repository.ErrNotFound)
}

// Deliverable returns a deliverable. Its client aggregate is loaded as well,
// so the parent contract is available through Contract without another query.
func (u *UnitOfWork) Deliverable(ctx context.Context, id string) (*scope.Deliverable, error) {
	if _, ok := u.byID[id]; !ok {
		var clientID string
		err := u.db.QueryRowContext(ctx, `
			SELECT c.client_id
			FROM deliverables d
			JOIN contracts c ON c.id = d.contract_id
			WHERE d.id = ?`, id).Scan(&clientID)
		if err := notFound(err, "deliverable", id); err != nil {
			return nil, err
		}
		if _, err := u.Client(ctx, clientID); err != nil {
			return nil, err
		}
	}
	if t, ok := u.byID[id]; ok {
		if d, ok := t.entity.(*scope.Deliverable); ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("deliverable %s: %w", id, repository.ErrNotFound)
}

// ClientEmailExists reports whether a persisted client uses email, ignoring case.
func (u *UnitOfWork) ClientEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := u.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE contact_email = ? COLLATE NOCASE)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return exists, nil
}

func loadClient(ctx context.Context, db *DB, id string) (*scope.Client, error) {
	var st scope.ClientState
	err := db.QueryRowContext(ctx, `
		SELECT id, name, contact_email, status, created_at, updated_at
		FROM clients WHERE id = ?`, id).Scan(
		&st.ID, &st.Name, &st.ContactEmail, &st.Status, &st.CreatedAt, &st.UpdatedAt,
	)
	if err := notFound(err, "client", id); err != nil {
		return nil, err
	}

	deliverables, err := loadDeliverables(ctx, db, id)
	if err != nil {
		return nil, err
	}
	contractStates, err := loadContractStates(ctx, db, id)
	if err != nil {
		return nil, err
	}

	contracts := make([]*scope.Contract, 0, len(contractStates))
	for _, cs := range contractStates {
		c, err := scope.RestoreContract(cs, deliverables[cs.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to restore contract %s: %w", cs.ID, err)
		}
		contracts = append(contracts, c)
	}
	client, err := scope.RestoreClient(st, contracts)
	if err != nil {
		return nil, fmt.Errorf("failed to restore client %s: %w", id, err)
	}
	return client, nil
}

func loadContractStates(ctx context.Context, db *DB, clientID string) ([]scope.ContractState, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, client_id, title, description, type, status, created_at, updated_at
		FROM contracts
		WHERE client_id = ?
		ORDER BY position`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}
	defer rows.Close()

	var states []scope.ContractState
	for rows.Next() {
		var cs scope.ContractState
		if err := rows.Scan(
			&cs.ID, &cs.ClientID, &cs.Title, &cs.Description, &cs.Type, &cs.Status, &cs.CreatedAt, &cs.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		states = append(states, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", err)
	}
	return states, nil
}

// loadDeliverables returns the deliverables of every contract of a client,
// keyed by contract id and in insertion order.
func loadDeliverables(ctx context.Context, db *DB, clientID string) (map[string][]*scope.Deliverable, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT d.id, d.contract_id, d.title, d.description, d.status, d.due_date, d.created_at, d.updated_at
		FROM deliverables d
		JOIN contracts c ON c.id = d.contract_id
		WHERE c.client_id = ?
		ORDER BY d.contract_id, d.position`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deliverables: %w", err)
	}
	defer rows.Close()

	byContract := make(map[string][]*scope.Deliverable)
	for rows.Next() {
		var ds scope.DeliverableState
		var due sql.NullTime
		if err := rows.Scan(
			&ds.ID, &ds.ContractID, &ds.Title, &ds.Description, &ds.Status, &due, &ds.CreatedAt, &ds.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deliverable: %w", err)
		}
		if due.Valid {
			t := due.Time
			ds.DueDate = &t
		}
		d, err := scope.RestoreDeliverable(ds)
		if err != nil {
			return nil, fmt.Errorf("failed to restore deliverable %s: %w", ds.ID, err)
		}
		byContract[ds.ContractID] = append(byContract[ds.ContractID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deliverable rows: %w", err)
	}
	return byContract, nil
}

func notFound(err error, kind, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	default:
		return fmt.Errorf("failed to get %s: %w", kind, err)
	}
}

// dbTime normalises a nullable timestamp for binding.
func dbTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
