package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"clients",
		"contracts",
		"deliverables",
		"activity_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	require.NoError(t, db.RunMigrations(), "migrations must be re-runnable")
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")

	_, err = db.Exec(`INSERT INTO contracts (id, client_id, position, title, type, status, created_at, updated_at)
		VALUES ('k1', 'missing', 0, 'T', 'FixedPrice', 'Draft', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err, "should fail with unknown client_id")
	require.True(t, isForeignKeyViolation(err))
}

// TestCascadeDelete verifies removing a client removes its contracts and deliverables
func TestCascadeDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	stmts := []string{
		`INSERT INTO clients (id, name, contact_email, status, created_at, updated_at)
		 VALUES ('c1', 'Acme', 'a@x.com', 'Active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		`INSERT INTO contracts (id, client_id, position, title, type, status, created_at, updated_at)
		 VALUES ('k1', 'c1', 0, 'Site', 'FixedPrice', 'Draft', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		`INSERT INTO deliverables (id, contract_id, position, title, status, created_at, updated_at)
		 VALUES ('d1', 'k1', 0, 'Wireframes', 'Pending', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	}
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	_, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = 'c1'`)
	require.NoError(t, err)

	for _, table := range []string{"contracts", "deliverables"} {
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count))
		require.Zero(t, count, "%s should be empty after cascade", table)
	}
}

// TestActivityLogAppendOnly verifies activity rows cannot be changed or removed
func TestActivityLogAppendOnly(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO activity_log (id, entity_kind, entity_id, kind, description, occurred_at)
		VALUES ('a1', 'Client', 'c1', 'Created', 'Client ''Acme'' created', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE activity_log SET description = 'edited' WHERE id = 'a1'`)
	require.ErrorContains(t, err, "append-only")

	_, err = db.ExecContext(ctx, `DELETE FROM activity_log WHERE id = 'a1'`)
	require.ErrorContains(t, err, "append-only")
}

// TestFieldLimits verifies the length checks on text columns
func TestFieldLimits(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO clients (id, name, contact_email, status, created_at, updated_at)
		VALUES ('c1', ?, 'a@x.com', 'Active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, strings.Repeat("n", 201))
	require.ErrorContains(t, err, "CHECK constraint failed")

	_, err = db.Exec(`INSERT INTO clients (id, name, contact_email, status, created_at, updated_at)
		VALUES ('c1', 'Acme', 'a@x.com', 'Dormant', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.ErrorContains(t, err, "CHECK constraint failed")
}
