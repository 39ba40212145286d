package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestStore_ListClients(t *testing.T) {
	db := NewTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	uow := store.Begin()
	zeta := newClient(t, "zeta", "z@x.com")
	alpha := newClient(t, "Alpha", "a@x.com")
	mid := newClient(t, "Mid", "m@x.com")
	mid.ToggleStatus()
	for _, c := range []*scope.Client{zeta, alpha, mid} {
		uow.AddClient(c)
	}
	require.NoError(t, uow.Commit(ctx))

	clients, err := store.ListClients(ctx, repository.ListClientsOptions{})
	require.NoError(t, err)
	require.Len(t, clients, 3)
	require.Equal(t, []string{"Alpha", "zeta", "Mid"},
		[]string{clients[0].Name, clients[1].Name, clients[2].Name})
	require.Equal(t, scope.ClientInactive, clients[2].Status)

	inactive := scope.ClientInactive
	clients, err = store.ListClients(ctx, repository.ListClientsOptions{Status: &inactive})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, mid.ID(), clients[0].ID)

	clients, err = store.ListClients(ctx, repository.ListClientsOptions{Offset: 1})
	require.NoError(t, err)
	require.Len(t, clients, 2)
	require.Equal(t, "zeta", clients[0].Name)

	clients, err = store.ListClients(ctx, repository.ListClientsOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, clients, 1)
}
