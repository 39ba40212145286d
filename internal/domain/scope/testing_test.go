package scope_test

import (
	"testing"
	"time"

	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock(t *testing.T) {
	t.Helper()
	current := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	restore := scope.SetClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	})
	t.Cleanup(restore)
}

func strPtr(s string) *string { return &s }

func newClient(t *testing.T) *scope.Client {
	t.Helper()
	c, err := scope.NewClient("Acme", "a@x.com")
	require.NoError(t, err)
	return c
}

func newContract(t *testing.T, clientID string) *scope.Contract {
	t.Helper()
	c, err := scope.NewContract(clientID, "Website redesign", nil, scope.ContractFixedPrice)
	require.NoError(t, err)
	return c
}

func newDeliverable(t *testing.T, contractID string) *scope.Deliverable {
	t.Helper()
	d, err := scope.NewDeliverable(contractID, "Wireframes", nil, nil)
	require.NoError(t, err)
	return d
}

// activeContract returns a contract that has one deliverable and is Active.
func activeContract(t *testing.T) (*scope.Contract, *scope.Deliverable) {
	t.Helper()
	c := newContract(t, "client-1")
	d := newDeliverable(t, c.ID())
	require.NoError(t, c.AddDeliverable(d))
	require.NoError(t, c.Activate())
	return c, d
}

func requireDomainError(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	require.EqualError(t, err, msg)
}
