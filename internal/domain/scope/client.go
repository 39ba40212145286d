package scope

import (
	"time"

	"github.com/google/uuid"
)

// Client is the aggregate root for a customer and the contracts signed with it.
type Client struct {
	id           string
	name         string
	contactEmail string
	status       ClientStatus
	createdAt    time.Time
	updatedAt    time.Time
	contracts    []*Contract
}

// ClientState is the scalar state of a client, without its contracts.
type ClientState struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ContactEmail string       `json:"contact_email"`
	Status       ClientStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewClient creates an active client.
func NewClient(name, contactEmail string) (*Client, error) {
	if err := validateClientDetails(name, contactEmail); err != nil {
		return nil, err
	}
	ts := now()
	return &Client{
		id:           uuid.NewString(),
		name:         name,
		contactEmail: contactEmail,
		status:       ClientActive,
		createdAt:    ts,
		updatedAt:    ts,
	}, nil
}

// RestoreClient rebuilds a persisted client. Contracts must belong to it and
// are kept in the given order.
func RestoreClient(state ClientState, contracts []*Contract) (*Client, error) {
	if blank(state.ID) {
		return nil, invalidArgument("client id cannot be empty")
	}
	if err := validateClientDetails(state.Name, state.ContactEmail); err != nil {
		return nil, err
	}
	if !state.Status.Valid() {
		return nil, invalidArgument("invalid client status %q", state.Status)
	}
	for _, c := range contracts {
		if c == nil || c.clientID != state.ID {
			return nil, invalidArgument("contract does not belong to client %s", state.ID)
		}
	}
	return &Client{
		id:           state.ID,
		name:         state.Name,
		contactEmail: state.ContactEmail,
		status:       state.Status,
		createdAt:    state.CreatedAt,
		updatedAt:    state.UpdatedAt,
		contracts:    append([]*Contract(nil), contracts...),
	}, nil
}

func (c *Client) ID() string           { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) ContactEmail() string { return c.contactEmail }
func (c *Client) Status() ClientStatus { return c.status }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

// Contracts returns the client's contracts in insertion order. The slice is a copy.
func (c *Client) Contracts() []*Contract {
	return append([]*Contract(nil), c.contracts...)
}

// State returns the scalar state of the client.
func (c *Client) State() ClientState {
	return ClientState{
		ID:           c.id,
		Name:         c.name,
		ContactEmail: c.contactEmail,
		Status:       c.status,
		CreatedAt:    c.createdAt,
		UpdatedAt:    c.updatedAt,
	}
}

// UpdateDetails replaces name and contact email. UpdatedAt moves even when the
// values are unchanged.
func (c *Client) UpdateDetails(name, contactEmail string) error {
	if err := validateClientDetails(name, contactEmail); err != nil {
		return err
	}
	c.name = name
	c.contactEmail = contactEmail
	c.updatedAt = now()
	return nil
}

// ToggleStatus flips Active and Inactive.
func (c *Client) ToggleStatus() {
	if c.status == ClientActive {
		c.status = ClientInactive
	} else {
		c.status = ClientActive
	}
	c.updatedAt = now()
}

// AddContract appends a contract. Only active clients accept contracts.
func (c *Client) AddContract(contract *Contract) error {
	if c.status == ClientInactive {
		return invalidState("cannot add contracts to an inactive client")
	}
	if contract == nil {
		return invalidArgument("contract is required")
	}
	if contract.clientID != c.id {
		return invalidArgument("contract belongs to client %s, not %s", contract.clientID, c.id)
	}
	c.contracts = append(c.contracts, contract)
	c.updatedAt = now()
	return nil
}

func validateClientDetails(name, contactEmail string) error {
	if blank(name) {
		return invalidArgument("client name cannot be blank")
	}
	if blank(contactEmail) {
		return invalidArgument("client contact email cannot be blank")
	}
	return nil
}
