package mocks

import (
	"context"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) NewUnitOfWork() repository.UnitOfWork {
	args := m.Called()
	return args.Get(0).(repository.UnitOfWork)
}

func (m *Store) ListClients(ctx context.Context, opts repository.ListClientsOptions) ([]scope.ClientState, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]scope.ClientState); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UnitOfWork is a mock for repository.UnitOfWork.
type UnitOfWork struct {
	mock.Mock
}

func (m *UnitOfWork) Client(ctx context.Context, id string) (*scope.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*scope.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UnitOfWork) Contract(ctx context.Context, id string) (*scope.Contract, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*scope.Contract); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UnitOfWork) Deliverable(ctx context.Context, id string) (*scope.Deliverable, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*scope.Deliverable); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UnitOfWork) ClientEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UnitOfWork) AddClient(client *scope.Client) {
	m.Called(client)
}

func (m *UnitOfWork) AddContract(contract *scope.Contract) {
	m.Called(contract)
}

func (m *UnitOfWork) AddDeliverable(deliverable *scope.Deliverable) {
	m.Called(deliverable)
}

func (m *UnitOfWork) Annotate(entityID, note string) {
	m.Called(entityID, note)
}

func (m *UnitOfWork) PendingChanges() []audit.PendingChange {
	args := m.Called()
	if changes, ok := args.Get(0).([]audit.PendingChange); ok {
		return changes
	}
	return nil
}

func (m *UnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Exists(ctx context.Context, kind activity.EntityKind, id string) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}
