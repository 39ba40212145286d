package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/scopetrack/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isClientEmailViolation matches the unique index on clients.contact_email.
func isClientEmailViolation(err error) bool {
	if !isUniqueViolation(err) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "clients.contact_email") || strings.Contains(msg, "idx_clients_email")
}

// translate tags constraint failures with the matching repository sentinel.
func translate(err error) error {
	switch {
	case isClientEmailViolation(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicateEmail, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", repository.ErrForeignKeyViolation, err)
	default:
		return err
	}
}
