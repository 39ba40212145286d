package mcp

import (
	"time"

	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
)

type CreateClientParams struct {
	Name         string `json:"name" jsonschema:"client display name"`
	ContactEmail string `json:"contact_email" jsonschema:"contact email, unique across clients"`
}

type UpdateClientParams struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

type IDParams struct {
	ID string `json:"id"`
}

type ListClientsParams struct {
	Status string `json:"status,omitempty" jsonschema:"Active or Inactive; omit for all"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type AddContractParams struct {
	ClientID    string  `json:"client_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type" jsonschema:"FixedPrice or TimeBased"`
}

type UpdateStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty" jsonschema:"optional note appended to the activity entry"`
}

type AddDeliverableParams struct {
	ContractID  string  `json:"contract_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     string  `json:"due_date,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD"`
}

type ListActivityParams struct {
	EntityKind string `json:"entity_kind" jsonschema:"Client, Contract or Deliverable"`
	EntityID   string `json:"entity_id"`
}

type RecentActivityParams struct {
	Limit int `json:"limit,omitempty"`
}

type DeliverableResponse struct {
	ID          string `json:"id"`
	ContractID  string `json:"contract_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ContractResponse struct {
	ID           string                `json:"id"`
	ClientID     string                `json:"client_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Type         string                `json:"type"`
	Status       string                `json:"status"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
	Deliverables []DeliverableResponse `json:"deliverables"`
}

type ClientResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	ContactEmail string             `json:"contact_email"`
	Status       string             `json:"status"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
	Contracts    []ContractResponse `json:"contracts"`
}

type ClientSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
}

type ListClientsResponse struct {
	Clients []ClientSummary `json:"clients"`
}

type ActivityEntryResponse struct {
	ID          string `json:"id"`
	EntityKind  string `json:"entity_kind"`
	EntityID    string `json:"entity_id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at"`
}

type ActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toDeliverableResponse(v scope.DeliverableView) DeliverableResponse {
	resp := DeliverableResponse{
		ID:          v.ID,
		ContractID:  v.ContractID,
		Title:       v.Title,
		Description: v.Description,
		Status:      string(v.Status),
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
	if v.DueDate != nil {
		resp.DueDate = formatTime(*v.DueDate)
	}
	return resp
}

func toContractResponse(v scope.ContractView) ContractResponse {
	resp := ContractResponse{
		ID:           v.ID,
		ClientID:     v.ClientID,
		Title:        v.Title,
		Description:  v.Description,
		Type:         string(v.Type),
		Status:       string(v.Status),
		CreatedAt:    formatTime(v.CreatedAt),
		UpdatedAt:    formatTime(v.UpdatedAt),
		Deliverables: make([]DeliverableResponse, 0, len(v.Deliverables)),
	}
	for _, d := range v.Deliverables {
		resp.Deliverables = append(resp.Deliverables, toDeliverableResponse(d))
	}
	return resp
}

func toClientResponse(v scope.ClientView) ClientResponse {
	resp := ClientResponse{
		ID:           v.ID,
		Name:         v.Name,
		ContactEmail: v.ContactEmail,
		Status:       string(v.Status),
		CreatedAt:    formatTime(v.CreatedAt),
		UpdatedAt:    formatTime(v.UpdatedAt),
		Contracts:    make([]ContractResponse, 0, len(v.Contracts)),
	}
	for _, c := range v.Contracts {
		resp.Contracts = append(resp.Contracts, toContractResponse(c))
	}
	return resp
}

func toActivityResponse(entries []activity.Entry) ActivityResponse {
	resp := ActivityResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ActivityEntryResponse{
			ID:          e.ID,
			EntityKind:  string(e.EntityKind),
			EntityID:    e.EntityID,
			Kind:        string(e.Kind),
			Description: e.Description,
			OccurredAt:  formatTime(e.OccurredAt),
		})
	}
	return resp
}
