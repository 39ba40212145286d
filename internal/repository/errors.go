package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint fails
	ErrConflict = errors.New("conflict")

	// ErrDuplicateEmail is the conflict raised by the unique client contact email
	ErrDuplicateEmail = fmt.Errorf("contact email %w", ErrConflict)

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
