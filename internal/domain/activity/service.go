package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrEntityNotFound is returned when listing activity for an entity that does
// not exist.
var ErrEntityNotFound = errors.New("entity not found")

// Service handles activity log queries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// ListByEntity returns the entries for one entity, oldest first. An unknown
// entity yields ErrEntityNotFound rather than an empty list.
func (s *Service) ListByEntity(ctx context.Context, kind EntityKind, entityID string) ([]Entry, error) {
	if !kind.Valid() {
		return nil, invalid("invalid entity kind %q", kind)
	}
	if entityID == "" {
		return nil, invalid("entity id cannot be empty")
	}
	exists, err := s.repo.Exists(ctx, kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("checking %s %s: %w", kind, entityID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s %s: %w", kind, entityID, ErrEntityNotFound)
	}
	entries, err := s.repo.List(ctx, ListOptions{EntityKind: &kind, EntityID: entityID})
	if err != nil {
		return nil, fmt.Errorf("listing activity for %s %s: %w", kind, entityID, err)
	}
	s.logger.Debug("activity listed", "entity_kind", kind, "entity_id", entityID, "count", len(entries))
	return entries, nil
}

// Recent lists entries across all entities, newest first.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	opts.Newest = true
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	return entries, nil
}
