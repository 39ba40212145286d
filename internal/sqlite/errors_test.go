package sqlite

import (
	"testing"

	"github.com/rpggio/scopetrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	db := NewTestDB(t)

	insert := func(id, email string) error {
		_, err := db.Exec(`INSERT INTO clients (id, name, contact_email, status, created_at, updated_at)
			VALUES (?, 'Acme', ?, 'Active', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, id, email)
		return err
	}
	require.NoError(t, insert("c1", "ops@acme.test"))

	dupEmail := translate(insert("c2", "OPS@acme.test"))
	require.ErrorIs(t, dupEmail, repository.ErrDuplicateEmail)
	require.ErrorIs(t, dupEmail, repository.ErrConflict)

	dupID := translate(insert("c1", "other@acme.test"))
	require.ErrorIs(t, dupID, repository.ErrConflict)
	require.NotErrorIs(t, dupID, repository.ErrDuplicateEmail)

	_, err := db.Exec(`INSERT INTO contracts (id, client_id, position, title, type, status, created_at, updated_at)
		VALUES ('k1', 'missing', 0, 'T', 'FixedPrice', 'Draft', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	fk := translate(err)
	require.ErrorIs(t, fk, repository.ErrForeignKeyViolation)
	require.NotErrorIs(t, fk, repository.ErrConflict)

	require.NoError(t, translate(nil))
}
