package scope

import (
	"time"

	"github.com/google/uuid"
)

// Contract is the aggregate root for an agreement with a client and the
// deliverables owed under it.
//
// Draft moves to Active (only with at least one deliverable) and on to
// Completed. Any status except Archived may be archived. Archived contracts
// accept no new deliverables.
type Contract struct {
	id           string
	clientID     string
	title        string
	description  string
	contractType ContractType
	status       ContractStatus
	createdAt    time.Time
	updatedAt    time.Time
	deliverables []*Deliverable
}

// ContractState is the scalar state of a contract, without its deliverables.
type ContractState struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"client_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        ContractType   `json:"type"`
	Status      ContractStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewContract creates a draft contract. A nil description is stored as "".
func NewContract(clientID, title string, description *string, contractType ContractType) (*Contract, error) {
	if blank(clientID) {
		return nil, invalidArgument("client id cannot be empty")
	}
	if blank(title) {
		return nil, invalidArgument("contract title cannot be blank")
	}
	if !contractType.Valid() {
		return nil, invalidArgument("invalid contract type %q", contractType)
	}
	ts := now()
	return &Contract{
		id:           uuid.NewString(),
		clientID:     clientID,
		title:        title,
		description:  deref(description),
		contractType: contractType,
		status:       ContractDraft,
		createdAt:    ts,
		updatedAt:    ts,
	}, nil
}

// RestoreContract rebuilds a persisted contract with its deliverables in order.
func RestoreContract(state ContractState, deliverables []*Deliverable) (*Contract, error) {
	if blank(state.ID) {
		return nil, invalidArgument("contract id cannot be empty")
	}
	if blank(state.ClientID) {
		return nil, invalidArgument("client id cannot be empty")
	}
	if blank(state.Title) {
		return nil, invalidArgument("contract title cannot be blank")
	}
	if !state.Type.Valid() {
		return nil, invalidArgument("invalid contract type %q", state.Type)
	}
	if !state.Status.Valid() {
		return nil, invalidArgument("invalid contract status %q", state.Status)
	}
	for _, d := range deliverables {
		if d == nil || d.contractID != state.ID {
			return nil, invalidArgument("deliverable does not belong to contract %s", state.ID)
		}
	}
	return &Contract{
		id:           state.ID,
		clientID:     state.ClientID,
		title:        state.Title,
		description:  state.Description,
		contractType: state.Type,
		status:       state.Status,
		createdAt:    state.CreatedAt,
		updatedAt:    state.UpdatedAt,
		deliverables: append([]*Deliverable(nil), deliverables...),
	}, nil
}

func (c *Contract) ID() string             { return c.id }
func (c *Contract) ClientID() string       { return c.clientID }
func (c *Contract) Title() string          { return c.title }
func (c *Contract) Description() string    { return c.description }
func (c *Contract) Type() ContractType     { return c.contractType }
func (c *Contract) Status() ContractStatus { return c.status }
func (c *Contract) CreatedAt() time.Time   { return c.createdAt }
func (c *Contract) UpdatedAt() time.Time   { return c.updatedAt }

// Deliverables returns the contract's deliverables in insertion order. The slice is a copy.
func (c *Contract) Deliverables() []*Deliverable {
	return append([]*Deliverable(nil), c.deliverables...)
}

// State returns the scalar state of the contract.
func (c *Contract) State() ContractState {
	return ContractState{
		ID:          c.id,
		ClientID:    c.clientID,
		Title:       c.title,
		Description: c.description,
		Type:        c.contractType,
		Status:      c.status,
		CreatedAt:   c.createdAt,
		UpdatedAt:   c.updatedAt,
	}
}

// Activate moves a draft contract with at least one deliverable to Active.
func (c *Contract) Activate() error {
	switch c.status {
	case ContractActive:
		return invalidState("contract is already active")
	case ContractCompleted:
		return invalidState("cannot activate a completed contract")
	case ContractArchived:
		return invalidState("cannot activate an archived contract")
	}
	if len(c.deliverables) == 0 {
		return invalidState("cannot activate contract without at least one deliverable")
	}
	c.setStatus(ContractActive)
	return nil
}

// Complete moves the contract to Completed.
func (c *Contract) Complete() error {
	switch c.status {
	case ContractCompleted:
		return invalidState("contract is already completed")
	case ContractArchived:
		return invalidState("cannot complete an archived contract")
	}
	c.setStatus(ContractCompleted)
	return nil
}

// Archive moves the contract to Archived.
func (c *Contract) Archive() error {
	if c.status == ContractArchived {
		return invalidState("contract is already archived")
	}
	c.setStatus(ContractArchived)
	return nil
}

// TransitionTo dispatches to Activate, Complete or Archive. Draft is not a
// reachable target.
func (c *Contract) TransitionTo(target ContractStatus) error {
	switch target {
	case ContractActive:
		return c.Activate()
	case ContractCompleted:
		return c.Complete()
	case ContractArchived:
		return c.Archive()
	default:
		return invalidArgument("invalid contract status %q", target)
	}
}

// AddDeliverable appends a deliverable unless the contract is archived.
func (c *Contract) AddDeliverable(deliverable *Deliverable) error {
	if c.status == ContractArchived {
		return invalidState("cannot add deliverables to an archived contract")
	}
	if deliverable == nil {
		return invalidArgument("deliverable is required")
	}
	if deliverable.contractID != c.id {
		return invalidArgument("deliverable belongs to contract %s, not %s", deliverable.contractID, c.id)
	}
	c.deliverables = append(c.deliverables, deliverable)
	c.updatedAt = now()
	return nil
}

func (c *Contract) setStatus(status ContractStatus) {
	c.status = status
	c.updatedAt = now()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
