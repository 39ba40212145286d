package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// ClientService defines client operations needed by MCP.
type ClientService interface {
	Create(ctx context.Context, name, email string) (outcome.Result[scope.ClientView], error)
	Update(ctx context.Context, id, name, email string) (outcome.Result[scope.ClientView], error)
	ToggleStatus(ctx context.Context, id string) (outcome.Result[scope.ClientView], error)
	AddContract(ctx context.Context, clientID, title string, description *string, contractType scope.ContractType) (outcome.Result[scope.ContractView], error)
	Get(ctx context.Context, id string) (outcome.Result[scope.ClientView], error)
	List(ctx context.Context, opts repository.ListClientsOptions) ([]scope.ClientState, error)
}

// ContractService defines contract operations needed by MCP.
type ContractService interface {
	UpdateStatus(ctx context.Context, id string, status scope.ContractStatus, note string) (outcome.Result[scope.ContractView], error)
	AddDeliverable(ctx context.Context, contractID, title string, description *string, dueDate *time.Time) (outcome.Result[scope.DeliverableView], error)
	Get(ctx context.Context, id string) (outcome.Result[scope.ContractView], error)
}

// DeliverableService defines deliverable operations needed by MCP.
type DeliverableService interface {
	UpdateStatus(ctx context.Context, id string, status scope.DeliverableStatus, note string) (outcome.Result[scope.DeliverableView], error)
	Get(ctx context.Context, id string) (outcome.Result[scope.DeliverableView], error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	ListByEntity(ctx context.Context, kind activity.EntityKind, entityID string) ([]activity.Entry, error)
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Clients      ClientService
	Contracts    ContractService
	Deliverables DeliverableService
	Activity     ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "scopetrack",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLogger(logger, "inbound"))
	server.AddSendingMiddleware(trafficLogger(logger, "outbound"))

	registerTools(server, cfg.Services, logger)

	return server
}
