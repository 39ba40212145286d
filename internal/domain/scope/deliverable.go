package scope

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Deliverable is a unit of work owed under a contract. Its status only moves
// while the parent contract is active.
type Deliverable struct {
	id          string
	contractID  string
	title       string
	description string
	status      DeliverableStatus
	dueDate     *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// DeliverableState is the full state of a deliverable.
type DeliverableState struct {
	ID          string            `json:"id"`
	ContractID  string            `json:"contract_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      DeliverableStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Pending -> InProgress -> Completed, with Cancelled reachable from both
// non-terminal states. No edge leads back to Pending.
var deliverableTransitions = map[DeliverableStatus][]DeliverableStatus{
	DeliverablePending:    {DeliverableInProgress, DeliverableCancelled},
	DeliverableInProgress: {DeliverableCompleted, DeliverableCancelled},
}

// NewDeliverable creates a pending deliverable. A nil description is stored as "".
func NewDeliverable(contractID, title string, description *string, dueDate *time.Time) (*Deliverable, error) {
	if blank(contractID) {
		return nil, invalidArgument("contract id cannot be empty")
	}
	if blank(title) {
		return nil, invalidArgument("deliverable title cannot be blank")
	}
	ts := now()
	return &Deliverable{
		id:          uuid.NewString(),
		contractID:  contractID,
		title:       title,
		description: deref(description),
		status:      DeliverablePending,
		dueDate:     copyTime(dueDate),
		createdAt:   ts,
		updatedAt:   ts,
	}, nil
}

// RestoreDeliverable rebuilds a persisted deliverable.
func RestoreDeliverable(state DeliverableState) (*Deliverable, error) {
	if blank(state.ID) {
		return nil, invalidArgument("deliverable id cannot be empty")
	}
	if blank(state.ContractID) {
		return nil, invalidArgument("contract id cannot be empty")
	}
	if blank(state.Title) {
		return nil, invalidArgument("deliverable title cannot be blank")
	}
	if !state.Status.Valid() {
		return nil, invalidArgument("invalid deliverable status %q", state.Status)
	}
	return &Deliverable{
		id:          state.ID,
		contractID:  state.ContractID,
		title:       state.Title,
		description: state.Description,
		status:      state.Status,
		dueDate:     copyTime(state.DueDate),
		createdAt:   state.CreatedAt,
		updatedAt:   state.UpdatedAt,
	}, nil
}

func (d *Deliverable) ID() string                { return d.id }
func (d *Deliverable) ContractID() string        { return d.contractID }
func (d *Deliverable) Title() string             { return d.title }
func (d *Deliverable) Description() string       { return d.description }
func (d *Deliverable) Status() DeliverableStatus { return d.status }
func (d *Deliverable) DueDate() *time.Time       { return copyTime(d.dueDate) }
func (d *Deliverable) CreatedAt() time.Time      { return d.createdAt }
func (d *Deliverable) UpdatedAt() time.Time      { return d.updatedAt }

// State returns the state of the deliverable.
func (d *Deliverable) State() DeliverableState {
	return DeliverableState{
		ID:          d.id,
		ContractID:  d.contractID,
		Title:       d.title,
		Description: d.description,
		Status:      d.status,
		DueDate:     copyTime(d.dueDate),
		CreatedAt:   d.createdAt,
		UpdatedAt:   d.updatedAt,
	}
}

// ChangeStatus moves the deliverable to newStatus given the status of its
// parent contract. Rules are checked in order and the first failure is returned.
func (d *Deliverable) ChangeStatus(newStatus DeliverableStatus, contractStatus ContractStatus) error {
	if !newStatus.Valid() {
		return invalidArgument("invalid deliverable status %q", newStatus)
	}
	if contractStatus != ContractActive {
		return invalidState("cannot change deliverable status when contract is not active")
	}
	switch d.status {
	case DeliverableCompleted:
		return invalidState("cannot change status of a completed deliverable")
	case DeliverableCancelled:
		return invalidState("cannot change status of a cancelled deliverable")
	}
	if newStatus == d.status {
		return invalidState("deliverable status is already %s", d.status)
	}
	if !CanTransition(d.status, newStatus) {
		return invalidState("invalid status transition from %s to %s", d.status, newStatus)
	}
	d.status = newStatus
	d.updatedAt = now()
	return nil
}

// CanTransition reports whether from -> to is an edge of the deliverable lifecycle.
func CanTransition(from, to DeliverableStatus) bool {
	return slices.Contains(deliverableTransitions[from], to)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
