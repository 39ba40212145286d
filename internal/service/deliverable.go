package service

import (
	"context"
	"log/slog"

	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// DeliverableService handles deliverable use cases.
type DeliverableService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewDeliverableService creates a new deliverable service.
func NewDeliverableService(store repository.Store, logger *slog.Logger) *DeliverableService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DeliverableService{store: store, logger: logger}
}

// UpdateStatus moves a deliverable along its lifecycle. The parent contract
// must be active.
func (s *DeliverableService) UpdateStatus(
	ctx context.Context,
	id string,
	status scope.DeliverableStatus,
	note string,
) (outcome.Result[scope.DeliverableView], error) {
	uow := s.store.NewUnitOfWork()
	deliverable, err := uow.Deliverable(ctx, id)
	if err != nil {
		return settle[scope.DeliverableView](lookup(err, ErrDeliverableNotFound, "deliverable"))
	}
	contract, err := uow.Contract(ctx, deliverable.ContractID())
	if err != nil {
		return settle[scope.DeliverableView](lookup(err, ErrContractNotFound, "contract"))
	}

	from := deliverable.Status()
	if err := deliverable.ChangeStatus(status, contract.Status()); err != nil {
		return outcome.Fail[scope.DeliverableView](err), nil
	}
	uow.Annotate(id, note)
	if err := commit(ctx, uow); err != nil {
		return settle[scope.DeliverableView](err)
	}

	s.logger.Info("deliverable status changed", "deliverable_id", id, "from", from, "to", deliverable.Status())
	return outcome.Success(deliverable.View()), nil
}

// Get returns a deliverable.
func (s *DeliverableService) Get(ctx context.Context, id string) (outcome.Result[scope.DeliverableView], error) {
	deliverable, err := s.store.NewUnitOfWork().Deliverable(ctx, id)
	if err != nil {
		return settle[scope.DeliverableView](lookup(err, ErrDeliverableNotFound, "deliverable"))
	}
	return outcome.Success(deliverable.View()), nil
}
