package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
	"github.com/rpggio/scopetrack/internal/repository/mocks"
	"github.com/rpggio/scopetrack/internal/service"
	"github.com/rpggio/scopetrack/internal/sqlite"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clients      *service.ClientService
	contracts    *service.ContractService
	deliverables *service.DeliverableService
	activity     *activity.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	return fixture{
		clients:      service.NewClientService(store, nil),
		contracts:    service.NewContractService(store, nil),
		deliverables: service.NewDeliverableService(store, nil),
		activity:     activity.NewService(sqlite.NewActivityRepository(db), nil),
	}
}

func (f fixture) client(t *testing.T, name, email string) scope.ClientView {
	t.Helper()
	res, err := f.clients.Create(context.Background(), name, email)
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	return res.Value()
}

func (f fixture) contract(t *testing.T, clientID string) scope.ContractView {
	t.Helper()
	res, err := f.clients.AddContract(context.Background(), clientID, "Website redesign", nil, scope.ContractFixedPrice)
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	return res.Value()
}

func (f fixture) deliverable(t *testing.T, contractID, title string) scope.DeliverableView {
	t.Helper()
	res, err := f.contracts.AddDeliverable(context.Background(), contractID, title, nil, nil)
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	return res.Value()
}

func (f fixture) history(t *testing.T, kind activity.EntityKind, id string) []string {
	t.Helper()
	entries, err := f.activity.ListByEntity(context.Background(), kind, id)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out
}

func TestClientService_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.client(t, "Acme", "a@x.com")
	require.Equal(t, scope.ClientActive, created.Status)
	require.Empty(t, created.Contracts)

	res, err := f.clients.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.Equal(t, "Acme", res.Value().Name)

	require.Equal(t, []string{"Client 'Acme' created"}, f.history(t, activity.EntityClient, created.ID))
}

func TestClientService_CreateFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.client(t, "Acme", "a@x.com")

	res, err := f.clients.Create(ctx, "Other", "A@x.com")
	require.NoError(t, err)
	require.False(t, res.IsSuccess())
	require.ErrorIs(t, res.Err(), service.ErrClientExists)
	require.Equal(t, "client already exists", res.Error())

	res, err = f.clients.Create(ctx, " ", "b@x.com")
	require.NoError(t, err)
	require.False(t, res.IsSuccess())
	require.ErrorIs(t, res.Err(), scope.ErrInvalidArgument)
}

func TestClientService_UpdateAndToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.client(t, "Acme", "a@x.com")
	f.client(t, "Globex", "g@x.com")

	res, err := f.clients.Update(ctx, acme.ID, "Acme Corp", "a@x.com")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	require.Equal(t, "Acme Corp", res.Value().Name)

	res, err = f.clients.Update(ctx, acme.ID, "Acme Corp", "g@x.com")
	require.NoError(t, err)
	require.ErrorIs(t, res.Err(), service.ErrClientExists)

	res, err = f.clients.ToggleStatus(ctx, acme.ID)
	require.NoError(t, err)
	require.Equal(t, scope.ClientInactive, res.Value().Status)

	require.Equal(t, []string{
		"Client 'Acme' created",
		"Client 'Acme Corp' updated",
		"Client 'Acme Corp' status changed to Inactive",
	}, f.history(t, activity.EntityClient, acme.ID))
}

func TestClientService_InactiveClientRejectsContracts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.client(t, "Acme", "a@x.com")
	_, err := f.clients.ToggleStatus(ctx, acme.ID)
	require.NoError(t, err)

	res, err := f.clients.AddContract(ctx, acme.ID, "Website", nil, scope.ContractTimeBased)
	require.NoError(t, err)
	require.False(t, res.IsSuccess())
	require.ErrorIs(t, res.Err(), scope.ErrInvalidState)
	require.Equal(t, "cannot add contracts to an inactive client", res.Error())

	got, err := f.clients.Get(ctx, acme.ID)
	require.NoError(t, err)
	require.Empty(t, got.Value().Contracts)
}

func TestClientService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.clients.Get(ctx, "missing")
	require.NoError(t, err)
	require.ErrorIs(t, res.Err(), service.ErrClientNotFound)
	require.ErrorIs(t, res.Err(), service.ErrNotFound)
	require.Equal(t, "client not found", res.Error())

	_, err = f.clients.ToggleStatus(ctx, "missing")
	require.NoError(t, err)

	cres, err := f.contracts.Get(ctx, "missing")
	require.NoError(t, err)
	require.ErrorIs(t, cres.Err(), service.ErrContractNotFound)

	dres, err := f.deliverables.UpdateStatus(ctx, "missing", scope.DeliverableInProgress, "")
	require.NoError(t, err)
	require.ErrorIs(t, dres.Err(), service.ErrDeliverableNotFound)
}

func TestClientService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.client(t, "Zed", "z@x.com")
	beta := f.client(t, "Beta", "b@x.com")
	f.client(t, "Alpha", "a@x.com")
	_, err := f.clients.ToggleStatus(ctx, beta.ID)
	require.NoError(t, err)

	list, err := f.clients.List(ctx, repository.ListClientsOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Alpha", list[0].Name)
	require.Equal(t, "Zed", list[1].Name)
	require.Equal(t, "Beta", list[2].Name)
}

func TestContractService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.client(t, "Acme", "a@x.com")
	contract := f.contract(t, acme.ID)

	res, err := f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractActive, "")
	require.NoError(t, err)
	require.Equal(t, "cannot activate contract without at least one deliverable", res.Error())

	f.deliverable(t, contract.ID, "Wireframes")
	f.deliverable(t, contract.ID, "Build")

	res, err = f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractActive, "signed by both parties")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	require.Equal(t, scope.ContractActive, res.Value().Status)
	require.Len(t, res.Value().Deliverables, 2)
	require.Equal(t, "Wireframes", res.Value().Deliverables[0].Title)

	res, err = f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractDraft, "")
	require.NoError(t, err)
	require.ErrorIs(t, res.Err(), scope.ErrInvalidArgument)

	res, err = f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractCompleted, "")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())

	history := f.history(t, activity.EntityContract, contract.ID)
	require.Len(t, history, 5)
	require.Equal(t, "Contract 'Website redesign' created", history[0])
	// each added deliverable touches the contract
	require.Equal(t, "Contract 'Website redesign' status changed to Draft", history[1])
	require.Equal(t, "Contract 'Website redesign' status changed to Draft", history[2])
	require.Contains(t, history[3], "Contract 'Website redesign' status changed to Active\n[")
	require.Contains(t, history[3], "] signed by both parties")
	require.Equal(t, "Contract 'Website redesign' status changed to Completed", history[4])
}

func TestContractService_ArchivedRejectsDeliverables(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, f.client(t, "Acme", "a@x.com").ID)

	res, err := f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractArchived, "")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())

	dres, err := f.contracts.AddDeliverable(ctx, contract.ID, "Late addition", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "cannot add deliverables to an archived contract", dres.Error())

	res, err = f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractActive, "")
	require.NoError(t, err)
	require.Equal(t, "cannot activate an archived contract", res.Error())
}

func TestDeliverableService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, f.client(t, "Acme", "a@x.com").ID)
	due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	dres, err := f.contracts.AddDeliverable(ctx, contract.ID, "Wireframes", nil, &due)
	require.NoError(t, err)
	d := dres.Value()
	require.NotNil(t, d.DueDate)

	res, err := f.deliverables.UpdateStatus(ctx, d.ID, scope.DeliverableInProgress, "")
	require.NoError(t, err)
	require.Equal(t, "cannot change deliverable status when contract is not active", res.Error())

	_, err = f.contracts.UpdateStatus(ctx, contract.ID, scope.ContractActive, "")
	require.NoError(t, err)

	res, err = f.deliverables.UpdateStatus(ctx, d.ID, scope.DeliverableInProgress, "")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	res, err = f.deliverables.UpdateStatus(ctx, d.ID, scope.DeliverableCompleted, "approved")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Error())
	res, err = f.deliverables.UpdateStatus(ctx, d.ID, scope.DeliverableCancelled, "")
	require.NoError(t, err)
	require.Equal(t, "cannot change status of a completed deliverable", res.Error())

	got, err := f.deliverables.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, scope.DeliverableCompleted, got.Value().Status)

	history := f.history(t, activity.EntityDeliverable, d.ID)
	require.Len(t, history, 3)
	require.Equal(t, "Deliverable 'Wireframes' status changed to InProgress", history[1])
	require.Contains(t, history[2], "] approved")
}

func TestClientService_InfrastructureErrorsAreReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	uow := &mocks.UnitOfWork{}
	uow.On("ClientEmailExists", ctx, "a@x.com").Return(false, nil)
	uow.On("AddClient", mock.AnythingOfType("*scope.Client")).Return()
	uow.On("Commit", ctx).Return(boom)
	store := &mocks.Store{}
	store.On("NewUnitOfWork").Return(uow)

	res, err := service.NewClientService(store, nil).Create(ctx, "Acme", "a@x.com")
	require.ErrorIs(t, err, boom)
	require.False(t, res.IsSuccess())
	uow.AssertExpectations(t)
}

func TestClientService_CommitErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		business error
	}{
		{"duplicate email", fmt.Errorf("inserting: %w", repository.ErrDuplicateEmail), service.ErrClientExists},
		{"missing owner", fmt.Errorf("inserting: %w", repository.ErrForeignKeyViolation), service.ErrOwnerNotFound},
		{"other conflict", fmt.Errorf("inserting: %w", repository.ErrConflict), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			uow := &mocks.UnitOfWork{}
			uow.On("ClientEmailExists", ctx, "a@x.com").Return(false, nil)
			uow.On("AddClient", mock.Anything).Return()
			uow.On("Commit", ctx).Return(tt.err)
			store := &mocks.Store{}
			store.On("NewUnitOfWork").Return(uow)

			res, err := service.NewClientService(store, nil).Create(ctx, "Acme", "a@x.com")
			if tt.business == nil {
				require.ErrorIs(t, err, repository.ErrConflict)
				require.NotErrorIs(t, err, service.ErrClientExists)
				require.False(t, res.IsSuccess())
				return
			}
			require.NoError(t, err)
			require.ErrorIs(t, res.Err(), tt.business)
		})
	}
}

func TestClientService_LoadErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	uow := &mocks.UnitOfWork{}
	uow.On("Client", ctx, "c1").Return(nil, boom)
	store := &mocks.Store{}
	store.On("NewUnitOfWork").Return(uow)

	_, err := service.NewClientService(store, nil).Get(ctx, "c1")
	require.ErrorIs(t, err, boom)
}
