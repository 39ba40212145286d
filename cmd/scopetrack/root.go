package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/scopetrack/internal/config"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/service"
	"github.com/rpggio/scopetrack/internal/sqlite"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:   "scopetrack",
		Short: "Track clients, contracts and deliverables with an audit trail",
		Long: `scopetrack records client work as Clients -> Contracts -> Deliverables.
Every create and status change lands in an append-only activity log, written in
the same transaction as the change itself.

Run "scopetrack serve" to expose the tools over MCP (stdio by default), or use
the report commands to inspect the database directly.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cmd.Flags().Changed("db") {
				cfg.DB.Path = dbPath
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides SCOPETRACK_DB_PATH)")

	root.AddCommand(serveCmd(a), migrateCmd(a), clientsCmd(a), activityCmd(a))
	return root
}

// initLogger builds the text logger. Logs go to w unless a log file is configured.
func (a *app) initLogger(w io.Writer) {
	if a.cfg.Log.Path != "" {
		file, err := openLogFile(a.cfg.Log.Path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			w = file
		}
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: a.cfg.Log.SlogLevel(),
	}))
}

// openDB opens and migrates the configured database. The caller closes it.
func (a *app) openDB(ctx context.Context) (*sqlite.DB, error) {
	if err := ensureDBDir(a.cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(a.cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrationsContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type services struct {
	clients      *service.ClientService
	contracts    *service.ContractService
	deliverables *service.DeliverableService
	activity     *activity.Service
}

func (a *app) services(db *sqlite.DB) services {
	store := sqlite.NewStore(db, sqlite.WithLogger(a.logger))
	return services{
		clients:      service.NewClientService(store, a.logger),
		contracts:    service.NewContractService(store, a.logger),
		deliverables: service.NewDeliverableService(store, a.logger),
		activity:     activity.NewService(sqlite.NewActivityRepository(db), a.logger),
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
