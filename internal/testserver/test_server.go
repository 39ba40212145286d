// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/mcp"
	"github.com/rpggio/scopetrack/internal/service"
	"github.com/rpggio/scopetrack/internal/sqlite"
	"github.com/rpggio/scopetrack/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
}

// New starts a server and registers its shutdown with t.Cleanup.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := sqlite.NewStore(db)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Clients:      service.NewClientService(store, nil),
			Contracts:    service.NewContractService(store, nil),
			Deliverables: service.NewDeliverableService(store, nil),
			Activity:     activity.NewService(sqlite.NewActivityRepository(db), nil),
		},
		Version: "test",
	})
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{},
	)

	server := httptest.NewServer(transport.NewRouter(handler, db, nil))
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db}
}

// URL returns the MCP endpoint.
func (ts *TestServer) URL() string {
	return ts.Server.URL + "/mcp"
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: ts.URL()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
