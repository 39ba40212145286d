package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/scopetrack/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

var _ activity.Repository = (*ActivityRepository)(nil)

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns activity entries matching the given filters, oldest first
// unless opts.Newest is set.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	query := `
		SELECT id, entity_kind, entity_id, kind, description, occurred_at
		FROM activity_log
	`

	var args []any
	var conditions []string

	if opts.EntityKind != nil {
		conditions = append(conditions, "entity_kind = ?")
		args = append(args, string(*opts.EntityKind))
	}
	if opts.EntityID != "" {
		conditions = append(conditions, "entity_id = ?")
		args = append(args, opts.EntityID)
	}
	if opts.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(*opts.Kind))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if opts.Newest {
		query += " ORDER BY occurred_at DESC, seq DESC"
	} else {
		query += " ORDER BY occurred_at ASC, seq ASC"
	}
	query += limitOffset(opts.Limit, opts.Offset, &args)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var entry activity.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.EntityKind,
			&entry.EntityID,
			&entry.Kind,
			&entry.Description,
			&entry.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}

// Exists reports whether the clients, contracts or deliverables table holds a
// row for id, depending on kind.
func (r *ActivityRepository) Exists(ctx context.Context, kind activity.EntityKind, id string) (bool, error) {
	var table string
	switch kind {
	case activity.EntityClient:
		table = "clients"
	case activity.EntityContract:
		table = "contracts"
	case activity.EntityDeliverable:
		table = "deliverables"
	default:
		return false, fmt.Errorf("unknown entity kind %q", kind)
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s %s: %w", kind, id, err)
	}
	return exists, nil
}
