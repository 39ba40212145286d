package mcp

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
	maxNoteLength        = 200

	defaultRecentLimit = 20
)

var errInternal = &APIError{Code: "INTERNAL", Message: "internal error", RecoveryHint: "Retry later"}

type handlers struct {
	svc    Services
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	h := &handlers{svc: svc, logger: logger}

	// Clients
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_client",
		Description: "Create an active client. The contact email must not be used by another client.",
	}, h.createClient)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_client",
		Description: "Change a client's name and contact email",
	}, h.updateClient)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_client_status",
		Description: "Flip a client between Active and Inactive",
	}, h.toggleClientStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_client",
		Description: "Get a client with its contracts and their deliverables",
	}, h.getClient)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clients",
		Description: "List clients ordered by status then name",
	}, h.listClients)

	// Contracts
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_contract",
		Description: "Add a draft contract to an active client",
	}, h.addContract)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_contract_status",
		Description: "Move a contract to Active, Completed or Archived, optionally noting why",
	}, h.updateContractStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_contract",
		Description: "Get a contract with its deliverables",
	}, h.getContract)

	// Deliverables
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_deliverable",
		Description: "Add a pending deliverable to a contract that is not archived",
	}, h.addDeliverable)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_deliverable_status",
		Description: "Move a deliverable forward (Pending, InProgress, Completed, Cancelled); requires an active contract",
	}, h.updateDeliverableStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_deliverable",
		Description: "Get a single deliverable",
	}, h.getDeliverable)

	// Activity
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activity",
		Description: "List the activity history of a client, contract or deliverable, oldest first",
	}, h.listActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List the most recent activity across all entities, newest first",
	}, h.recentActivity)
}

func (h *handlers) createClient(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateClientParams) (*sdkmcp.CallToolResult, ClientResponse, error) {
	if err := checkClientFields(in.Name, in.ContactEmail); err != nil {
		return nil, ClientResponse{}, err
	}
	res, err := h.svc.Clients.Create(ctx, in.Name, in.ContactEmail)
	view, err := unwrap(h, "create_client", res, err)
	if err != nil {
		return nil, ClientResponse{}, err
	}
	return nil, toClientResponse(view), nil
}

func (h *handlers) updateClient(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateClientParams) (*sdkmcp.CallToolResult, ClientResponse, error) {
	if err := checkClientFields(in.Name, in.ContactEmail); err != nil {
		return nil, ClientResponse{}, err
	}
	res, err := h.svc.Clients.Update(ctx, in.ID, in.Name, in.ContactEmail)
	view, err := unwrap(h, "update_client", res, err)
	if err != nil {
		return nil, ClientResponse{}, err
	}
	return nil, toClientResponse(view), nil
}

func (h *handlers) toggleClientStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, ClientResponse, error) {
	res, err := h.svc.Clients.ToggleStatus(ctx, in.ID)
	view, err := unwrap(h, "toggle_client_status", res, err)
	if err != nil {
		return nil, ClientResponse{}, err
	}
	return nil, toClientResponse(view), nil
}

func (h *handlers) getClient(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, ClientResponse, error) {
	res, err := h.svc.Clients.Get(ctx, in.ID)
	view, err := unwrap(h, "get_client", res, err)
	if err != nil {
		return nil, ClientResponse{}, err
	}
	return nil, toClientResponse(view), nil
}

func (h *handlers) listClients(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListClientsParams) (*sdkmcp.CallToolResult, ListClientsResponse, error) {
	opts := repository.ListClientsOptions{Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		status, err := scope.ParseClientStatus(in.Status)
		if err != nil {
			return nil, ListClientsResponse{}, toolError(err)
		}
		opts.Status = &status
	}
	if in.Limit < 0 || in.Offset < 0 {
		return nil, ListClientsResponse{}, invalidArgument("limit and offset cannot be negative")
	}

	clients, err := h.svc.Clients.List(ctx, opts)
	if err != nil {
		return nil, ListClientsResponse{}, h.internal("list_clients", err)
	}
	resp := ListClientsResponse{Clients: make([]ClientSummary, 0, len(clients))}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, ClientSummary{
			ID:           c.ID,
			Name:         c.Name,
			ContactEmail: c.ContactEmail,
			Status:       string(c.Status),
		})
	}
	return nil, resp, nil
}

func (h *handlers) addContract(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddContractParams) (*sdkmcp.CallToolResult, ContractResponse, error) {
	if err := checkLength("title", in.Title, maxNameLength); err != nil {
		return nil, ContractResponse{}, err
	}
	if in.Description != nil {
		if err := checkLength("description", *in.Description, maxDescriptionLength); err != nil {
			return nil, ContractResponse{}, err
		}
	}
	contractType, err := scope.ParseContractType(in.Type)
	if err != nil {
		return nil, ContractResponse{}, toolError(err)
	}

	res, err := h.svc.Clients.AddContract(ctx, in.ClientID, in.Title, in.Description, contractType)
	view, err := unwrap(h, "add_contract", res, err)
	if err != nil {
		return nil, ContractResponse{}, err
	}
	return nil, toContractResponse(view), nil
}

func (h *handlers) updateContractStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateStatusParams) (*sdkmcp.CallToolResult, ContractResponse, error) {
	if err := checkLength("note", in.Note, maxNoteLength); err != nil {
		return nil, ContractResponse{}, err
	}
	status, err := scope.ParseContractStatus(in.Status)
	if err != nil {
		return nil, ContractResponse{}, toolError(err)
	}

	res, err := h.svc.Contracts.UpdateStatus(ctx, in.ID, status, in.Note)
	view, err := unwrap(h, "update_contract_status", res, err)
	if err != nil {
		return nil, ContractResponse{}, err
	}
	return nil, toContractResponse(view), nil
}

func (h *handlers) getContract(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, ContractResponse, error) {
	res, err := h.svc.Contracts.Get(ctx, in.ID)
	view, err := unwrap(h, "get_contract", res, err)
	if err != nil {
		return nil, ContractResponse{}, err
	}
	return nil, toContractResponse(view), nil
}

func (h *handlers) addDeliverable(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddDeliverableParams) (*sdkmcp.CallToolResult, DeliverableResponse, error) {
	if err := checkLength("title", in.Title, maxNameLength); err != nil {
		return nil, DeliverableResponse{}, err
	}
	if in.Description != nil {
		if err := checkLength("description", *in.Description, maxDescriptionLength); err != nil {
			return nil, DeliverableResponse{}, err
		}
	}
	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, DeliverableResponse{}, err
	}

	res, err := h.svc.Contracts.AddDeliverable(ctx, in.ContractID, in.Title, in.Description, dueDate)
	view, err := unwrap(h, "add_deliverable", res, err)
	if err != nil {
		return nil, DeliverableResponse{}, err
	}
	return nil, toDeliverableResponse(view), nil
}

func (h *handlers) updateDeliverableStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateStatusParams) (*sdkmcp.CallToolResult, DeliverableResponse, error) {
	if err := checkLength("note", in.Note, maxNoteLength); err != nil {
		return nil, DeliverableResponse{}, err
	}
	status, err := scope.ParseDeliverableStatus(in.Status)
	if err != nil {
		return nil, DeliverableResponse{}, toolError(err)
	}

	res, err := h.svc.Deliverables.UpdateStatus(ctx, in.ID, status, in.Note)
	view, err := unwrap(h, "update_deliverable_status", res, err)
	if err != nil {
		return nil, DeliverableResponse{}, err
	}
	return nil, toDeliverableResponse(view), nil
}

func (h *handlers) getDeliverable(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, DeliverableResponse, error) {
	res, err := h.svc.Deliverables.Get(ctx, in.ID)
	view, err := unwrap(h, "get_deliverable", res, err)
	if err != nil {
		return nil, DeliverableResponse{}, err
	}
	return nil, toDeliverableResponse(view), nil
}

func (h *handlers) listActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListActivityParams) (*sdkmcp.CallToolResult, ActivityResponse, error) {
	kind, err := activity.ParseEntityKind(in.EntityKind)
	if err != nil {
		return nil, ActivityResponse{}, toolError(err)
	}
	entries, err := h.svc.Activity.ListByEntity(ctx, kind, in.EntityID)
	if err != nil {
		if apiErr := MapError(err); apiErr != nil {
			return nil, ActivityResponse{}, apiErr
		}
		return nil, ActivityResponse{}, h.internal("list_activity", err)
	}
	return nil, toActivityResponse(entries), nil
}

func (h *handlers) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, ActivityResponse, error) {
	if in.Limit < 0 {
		return nil, ActivityResponse{}, invalidArgument("limit cannot be negative")
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultRecentLimit
	}
	entries, err := h.svc.Activity.Recent(ctx, activity.ListOptions{Limit: limit})
	if err != nil {
		return nil, ActivityResponse{}, h.internal("get_recent_activity", err)
	}
	return nil, toActivityResponse(entries), nil
}

// unwrap unpacks a service call: business failures become mapped tool
// errors, infrastructure errors are logged and hidden behind errInternal.
func unwrap[T any](h *handlers, tool string, res outcome.Result[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, h.internal(tool, err)
	}
	if !res.IsSuccess() {
		return zero, toolError(res.Err())
	}
	return res.Value(), nil
}

func (h *handlers) internal(tool string, err error) error {
	h.logger.Error("tool failed", "tool", tool, "error", err)
	return errInternal
}

func checkClientFields(name, email string) error {
	if err := checkLength("name", name, maxNameLength); err != nil {
		return err
	}
	return checkLength("contact_email", email, maxNameLength)
}

func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return invalidArgument("%s must be at most %d characters", field, max)
	}
	return nil
}

// parseDueDate accepts an RFC 3339 timestamp or a bare calendar date.
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, invalidArgument("due_date must be an RFC 3339 timestamp or YYYY-MM-DD")
}
