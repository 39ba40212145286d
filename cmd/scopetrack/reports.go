package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository"
	"github.com/spf13/cobra"
)

func clientsCmd(a *app) *cobra.Command {
	var (
		status string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients ordered by status then name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := repository.ListClientsOptions{Limit: limit}
			if status != "" {
				s, err := scope.ParseClientStatus(status)
				if err != nil {
					return err
				}
				opts.Status = &s
			}

			a.initLogger(cmd.ErrOrStderr())
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			clients, err := a.services(db).clients.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), clients)
			}
			renderClients(cmd.OutOrStdout(), clients)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter (Active, Inactive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func activityCmd(a *app) *cobra.Command {
	var (
		kind   string
		id     string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show activity for one entity, or the most recent activity overall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (kind == "") != (id == "") {
				return fmt.Errorf("--kind and --id must be given together")
			}

			a.initLogger(cmd.ErrOrStderr())
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := a.services(db).activity
			var entries []activity.Entry
			if kind != "" {
				entityKind, err := activity.ParseEntityKind(kind)
				if err != nil {
					return err
				}
				entries, err = svc.ListByEntity(cmd.Context(), entityKind, id)
				if err != nil {
					return err
				}
			} else {
				entries, err = svc.Recent(cmd.Context(), activity.ListOptions{Limit: limit})
				if err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			renderActivity(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "entity kind (Client, Contract, Deliverable)")
	cmd.Flags().StringVar(&id, "id", "", "entity id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows for recent activity")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func renderClients(w io.Writer, clients []scope.ClientState) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "Name", "Email", "Status", "Updated"})
	for _, c := range clients {
		tw.AppendRow(table.Row{c.ID, c.Name, c.ContactEmail, c.Status, c.UpdatedAt.UTC().Format(time.DateTime)})
	}
	tw.AppendFooter(table.Row{"", "", "", "Total", len(clients)})
	tw.Render()
}

func renderActivity(w io.Writer, entries []activity.Entry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"When", "Entity", "Entity ID", "Kind", "Description"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.OccurredAt.UTC().Format(time.DateTime), e.EntityKind, e.EntityID, e.Kind, e.Description})
	}
	tw.Render()
}
