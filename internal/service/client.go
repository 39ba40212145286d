package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/scopetrack/internal/domain/outcome"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// ClientService handles client use cases.
type ClientService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewClientService creates a new client service.
func NewClientService(store repository.Store, logger *slog.Logger) *ClientService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ClientService{store: store, logger: logger}
}

// Create registers a new active client. The contact email must be unique.
func (s *ClientService) Create(ctx context.Context, name, email string) (outcome.Result[scope.ClientView], error) {
	uow := s.store.NewUnitOfWork()
	exists, err := uow.ClientEmailExists(ctx, email)
	if err != nil {
		return outcome.Result[scope.ClientView]{}, fmt.Errorf("checking client email: %w", err)
	}
	if exists {
		return outcome.Fail[scope.ClientView](ErrClientExists), nil
	}

	client, err := scope.NewClient(name, email)
	if err != nil {
		return outcome.Fail[scope.ClientView](err), nil
	}
	uow.AddClient(client)
	if err := commit(ctx, uow); err != nil {
		return settle[scope.ClientView](err)
	}

	s.logger.Info("client created", "client_id", client.ID())
	return outcome.Success(client.View()), nil
}

// Update replaces a client's name and contact email.
func (s *ClientService) Update(ctx context.Context, id, name, email string) (outcome.Result[scope.ClientView], error) {
	uow := s.store.NewUnitOfWork()
	client, err := uow.Client(ctx, id)
	if err != nil {
		return settle[scope.ClientView](lookup(err, ErrClientNotFound, "client"))
	}

	if !strings.EqualFold(strings.TrimSpace(email), client.ContactEmail()) {
		exists, err := uow.ClientEmailExists(ctx, email)
		if err != nil {
			return outcome.Result[scope.ClientView]{}, fmt.Errorf("checking client email: %w", err)
		}
		if exists {
			return outcome.Fail[scope.ClientView](ErrClientExists), nil
		}
	}

	if err := client.UpdateDetails(name, email); err != nil {
		return outcome.Fail[scope.ClientView](err), nil
	}
	if err := commit(ctx, uow); err != nil {
		return settle[scope.ClientView](err)
	}
	return outcome.Success(client.View()), nil
}

// ToggleStatus flips a client between Active and Inactive.
func (s *ClientService) ToggleStatus(ctx context.Context, id string) (outcome.Result[scope.ClientView], error) {
	uow := s.store.NewUnitOfWork()
	client, err := uow.Client(ctx, id)
	if err != nil {
		return settle[scope.ClientView](lookup(err, ErrClientNotFound, "client"))
	}

	client.ToggleStatus()
	if err := commit(ctx, uow); err != nil {
		return settle[scope.ClientView](err)
	}

	s.logger.Info("client status changed", "client_id", id, "status", client.Status())
	return outcome.Success(client.View()), nil
}

// AddContract creates a draft contract under an active client.
func (s *ClientService) AddContract(
	ctx context.Context,
	clientID, title string,
	description *string,
	contractType scope.ContractType,
) (outcome.Result[scope.ContractView], error) {
	uow := s.store.NewUnitOfWork()
	client, err := uow.Client(ctx, clientID)
	if err != nil {
		return settle[scope.ContractView](lookup(err, ErrClientNotFound, "client"))
	}

	contract, err := scope.NewContract(clientID, title, description, contractType)
	if err != nil {
		return outcome.Fail[scope.ContractView](err), nil
	}
	if err := client.AddContract(contract); err != nil {
		return outcome.Fail[scope.ContractView](err), nil
	}
	if err := commit(ctx, uow); err != nil {
		return settle[scope.ContractView](err)
	}

	s.logger.Info("contract created", "client_id", clientID, "contract_id", contract.ID())
	return outcome.Success(contract.View()), nil
}

// Get returns a client with its contracts and deliverables.
func (s *ClientService) Get(ctx context.Context, id string) (outcome.Result[scope.ClientView], error) {
	client, err := s.store.NewUnitOfWork().Client(ctx, id)
	if err != nil {
		return settle[scope.ClientView](lookup(err, ErrClientNotFound, "client"))
	}
	return outcome.Success(client.View()), nil
}

// List returns clients ordered by status, then name.
func (s *ClientService) List(ctx context.Context, opts repository.ListClientsOptions) ([]scope.ClientState, error) {
	clients, err := s.store.ListClients(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}
