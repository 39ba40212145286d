package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/scopetrack/internal/config"
	"github.com/rpggio/scopetrack/internal/mcp"
	"github.com/rpggio/scopetrack/internal/sqlite"
	"github.com/rpggio/scopetrack/internal/transport"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(a *app) *cobra.Command {
	var mode string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("transport") {
				a.cfg.Transport.Mode = mode
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			// stdout belongs to JSON-RPC in stdio mode.
			logWriter := cmd.ErrOrStderr()
			if a.cfg.Transport.Mode == config.TransportHTTP {
				logWriter = cmd.OutOrStdout()
			}
			a.initLogger(logWriter)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := a.services(db)
			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Clients:      svc.clients,
					Contracts:    svc.contracts,
					Deliverables: svc.deliverables,
					Activity:     svc.activity,
				},
				Version: version,
				Logger:  a.logger,
			})

			if a.cfg.Transport.Mode == config.TransportStdio {
				return runStdio(ctx, a.logger, server)
			}
			return runHTTP(ctx, a.logger, server, db, a.cfg.Server.Addr())
		},
	}
	cmd.Flags().StringVar(&mode, "transport", "", "stdio or http (overrides SCOPETRACK_TRANSPORT)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides SCOPETRACK_SERVER_PORT)")
	return cmd
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is cancelled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, db *sqlite.DB, addr string) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewRouter(mcpHandler, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.initLogger(cmd.ErrOrStderr())
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			a.logger.Info("migrations applied", "db", a.cfg.DB.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", a.cfg.DB.Path)
			return nil
		},
	}
}
