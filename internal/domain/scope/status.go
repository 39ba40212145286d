package scope

import (
	"slices"
	"strings"
	"time"
)

// ClientStatus is the lifecycle status of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
)

// ContractType describes how a contract is billed.
type ContractType string

const (
	ContractFixedPrice ContractType = "FixedPrice"
	ContractTimeBased  ContractType = "TimeBased"
)

// ContractStatus is the lifecycle status of a contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "Draft"
	ContractActive    ContractStatus = "Active"
	ContractCompleted ContractStatus = "Completed"
	ContractArchived  ContractStatus = "Archived"
)

// DeliverableStatus is the lifecycle status of a deliverable.
type DeliverableStatus string

const (
	DeliverablePending    DeliverableStatus = "Pending"
	DeliverableInProgress DeliverableStatus = "InProgress"
	DeliverableCompleted  DeliverableStatus = "Completed"
	DeliverableCancelled  DeliverableStatus = "Cancelled"
)

var (
	clientStatuses      = []ClientStatus{ClientActive, ClientInactive}
	contractTypes       = []ContractType{ContractFixedPrice, ContractTimeBased}
	contractStatuses    = []ContractStatus{ContractDraft, ContractActive, ContractCompleted, ContractArchived}
	deliverableStatuses = []DeliverableStatus{DeliverablePending, DeliverableInProgress, DeliverableCompleted, DeliverableCancelled}
)

func (s ClientStatus) Valid() bool      { return slices.Contains(clientStatuses, s) }
func (t ContractType) Valid() bool      { return slices.Contains(contractTypes, t) }
func (s ContractStatus) Valid() bool    { return slices.Contains(contractStatuses, s) }
func (s DeliverableStatus) Valid() bool { return slices.Contains(deliverableStatuses, s) }

// Terminal reports whether no transition may leave this status.
func (s DeliverableStatus) Terminal() bool {
	return s == DeliverableCompleted || s == DeliverableCancelled
}

// ParseClientStatus accepts the canonical name in any case, with or without
// separators ("inactive", "Inactive").
func ParseClientStatus(raw string) (ClientStatus, error) {
	return parse(raw, clientStatuses, "client status")
}

// ParseContractType accepts "FixedPrice", "fixed_price", "fixed-price" and so on.
func ParseContractType(raw string) (ContractType, error) {
	return parse(raw, contractTypes, "contract type")
}

// ParseContractStatus accepts the canonical name in any case.
func ParseContractStatus(raw string) (ContractStatus, error) {
	return parse(raw, contractStatuses, "contract status")
}

// ParseDeliverableStatus accepts "InProgress", "in_progress", "in-progress" and so on.
func ParseDeliverableStatus(raw string) (DeliverableStatus, error) {
	return parse(raw, deliverableStatuses, "deliverable status")
}

func parse[S ~string](raw string, options []S, what string) (S, error) {
	key := normalize(raw)
	for _, opt := range options {
		if normalize(string(opt)) == key {
			return opt, nil
		}
	}
	var zero S
	return zero, invalidArgument("invalid %s %q", what, raw)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

var now = func() time.Time { return time.Now().UTC() }

func blank(s string) bool { return strings.TrimSpace(s) == "" }
