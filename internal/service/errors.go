package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

var (
	// ErrNotFound is the kind shared by the lookup failures below.
	ErrNotFound = errors.New("not found")
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = fmt.Errorf("client %w", ErrNotFound)
	// ErrContractNotFound indicates the contract doesn't exist.
	ErrContractNotFound = fmt.Errorf("contract %w", ErrNotFound)
	// ErrDeliverableNotFound indicates the deliverable doesn't exist.
	ErrDeliverableNotFound = fmt.Errorf("deliverable %w", ErrNotFound)
	// ErrOwnerNotFound indicates the client or contract a new record belongs to
	// was gone by the time it was written.
	ErrOwnerNotFound = fmt.Errorf("owning record %w", ErrNotFound)
	// ErrClientExists indicates another client already uses the contact email.
	ErrClientExists = errors.New("client already exists")
)

// isBusiness reports whether err is an expected failure to hand back through
// an outcome rather than as an error return.
func isBusiness(err error) bool {
	return errors.Is(err, scope.ErrInvalidArgument) ||
		errors.Is(err, scope.ErrInvalidState) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrClientExists)
}

// settle converts err into a failed outcome when it is a business failure and
// returns it as an error otherwise.
func settle[T any](err error) (outcome.Result[T], error) {
	if isBusiness(err) {
		return outcome.Fail[T](err), nil
	}
	return outcome.Result[T]{}, err
}

func lookup(err error, notFound error, kind string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("loading %s: %w", kind, err)
}

// commit maps the constraint failures a caller can act on to business errors.
// Any other conflict is unexpected and returned as an error.
func commit(ctx context.Context, uow repository.UnitOfWork) error {
	err := uow.Commit(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrClientExists
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrOwnerNotFound
	default:
		return fmt.Errorf("committing: %w", err)
	}
}
