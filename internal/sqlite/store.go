package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/scopetrack/internal/audit"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
)

// Store implements repository.Store for SQLite.
type Store struct {
	db     *DB
	hook   PreCommitHook
	logger *slog.Logger
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPreCommitHook replaces the default auditor hook.
func WithPreCommitHook(hook PreCommitHook) Option {
	return func(s *Store) { s.hook = hook }
}

// WithLogger sets the logger used by units of work.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store whose units of work run audit.New().Derive before
// every commit.
func NewStore(db *DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		hook:   audit.New().Derive,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin opens a unit of work.
func (s *Store) Begin() *UnitOfWork {
	return newUnitOfWork(s.db, s.hook, s.logger)
}

// NewUnitOfWork opens a unit of work.
func (s *Store) NewUnitOfWork() repository.UnitOfWork {
	return s.Begin()
}

// ListClients returns client states ordered by status, then name.
func (s *Store) ListClients(ctx context.Context, opts repository.ListClientsOptions) ([]scope.ClientState, error) {
	query := `
		SELECT id, name, contact_email, status, created_at, updated_at
		FROM clients
	`
	var args []any
	if opts.Status != nil {
		query += " WHERE status = ?"
		args = append(args, string(*opts.Status))
	}
	query += " ORDER BY status, name COLLATE NOCASE, id"
	query += limitOffset(opts.Limit, opts.Offset, &args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []scope.ClientState
	for rows.Next() {
		var st scope.ClientState
		if err := rows.Scan(&st.ID, &st.Name, &st.ContactEmail, &st.Status, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

// limitOffset renders LIMIT/OFFSET clauses. SQLite needs a LIMIT before an
// OFFSET, so -1 stands in for "no limit".
func limitOffset(limit, offset int, args *[]any) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	if limit <= 0 {
		limit = -1
	}
	*args = append(*args, limit)
	if offset <= 0 {
		return " LIMIT ?"
	}
	*args = append(*args, offset)
	return " LIMIT ? OFFSET ?"
}
