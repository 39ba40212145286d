package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// ContractService handles contract use cases.
type ContractService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewContractService creates a new contract service.
func NewContractService(store repository.Store, logger *slog.Logger) *ContractService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ContractService{store: store, logger: logger}
}

// UpdateStatus moves a contract to Active, Completed or Archived. A non-empty
// note is appended to the audit entry for the change.
func (s *ContractService) UpdateStatus(
	ctx context.Context,
	id string,
	status scope.ContractStatus,
	note string,
) (outcome.Result[scope.ContractView], error) {
	uow := s.store.NewUnitOfWork()
	contract, err := uow.Contract(ctx, id)
	if err != nil {
		return settle[scope.ContractView](lookup(err, ErrContractNotFound, "contract"))
	}

	from := contract.Status()
	if err := contract.TransitionTo(status); err != nil {
		return outcome.Fail[scope.ContractView](err), nil
	}
	uow.Annotate(id, note)
	if err := commit(ctx, uow); err != nil {
		return settle[scope.ContractView](err)
	}

	s.logger.Info("contract status changed", "contract_id", id, "from", from, "to", contract.Status())
	return outcome.Success(contract.View()), nil
}

// AddDeliverable creates a pending deliverable under a contract that is not archived.
func (s *ContractService) AddDeliverable(
	ctx context.Context,
	contractID, title string,
	description *string,
	dueDate *time.Time,
) (outcome.Result[scope.DeliverableView], error) {
	uow := s.store.NewUnitOfWork()
	contract, err := uow.Contract(ctx, contractID)
	if err != nil {
		return settle[scope.DeliverableView](lookup(err, ErrContractNotFound, "contract"))
	}

	deliverable, err := scope.NewDeliverable(contractID, title, description, dueDate)
	if err != nil {
		return outcome.Fail[scope.DeliverableView](err), nil
	}
	if err := contract.AddDeliverable(deliverable); err != nil {
		return outcome.Fail[scope.DeliverableView](err), nil
	}
	if err := commit(ctx, uow); err != nil {
		return settle[scope.DeliverableView](err)
	}

	s.logger.Info("deliverable created", "contract_id", contractID, "deliverable_id", deliverable.ID())
	return outcome.Success(deliverable.View()), nil
}

// Get returns a contract with its deliverables.
func (s *ContractService) Get(ctx context.Context, id string) (outcome.Result[scope.ContractView], error) {
	contract, err := s.store.NewUnitOfWork().Contract(ctx, id)
	if err != nil {
		return settle[scope.ContractView](lookup(err, ErrContractNotFound, "contract"))
	}
	return outcome.Success(contract.View()), nil
}
