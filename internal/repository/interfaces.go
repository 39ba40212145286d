package repository

import (
	"context"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/scope"
)

// UnitOfWork tracks the aggregates of one request and commits their changes,
// together with the activity entries derived from them, atomically.
//
// Loads are identity mapped: the same id yields the same pointer for the life
// of the unit of work. Loading any entity hydrates its whole client aggregate.
type UnitOfWork interface {
	Client(ctx context.Context, id string) (*scope.Client, error)
	Contract(ctx context.Context, id string) (*scope.Contract, error)
	Deliverable(ctx context.Context, id string) (*scope.Deliverable, error)
	ClientEmailExists(ctx context.Context, email string) (bool, error)

	AddClient(client *scope.Client)
	AddContract(contract *scope.Contract)
	AddDeliverable(deliverable *scope.Deliverable)
	Annotate(entityID, note string)

	PendingChanges() []audit.PendingChange
	Commit(ctx context.Context) error
}

// Store opens units of work and serves read-only listings.
type Store interface {
	NewUnitOfWork() UnitOfWork
	ListClients(ctx context.Context, opts ListClientsOptions) ([]scope.ClientState, error)
}

// ListClientsOptions filters client listings. Results are ordered by status,
// then name.
type ListClientsOptions struct {
	Status *scope.ClientStatus
	Limit  int
	Offset int
}
