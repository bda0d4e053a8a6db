package main

import (
	"fmt"
	"log/slog"

	"github.com/ideamans/go-register/internal/backend"
	"github.com/ideamans/go-register/internal/config"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		to        string
		toBackend string
		toSheet   string
		toTable   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the table into another backend",
		Long: `Copy the table into another backend, replacing what the target holds.
The target backend is taken from the extension of --to unless --to-backend
is given. For the sheets backend --to is the spreadsheet ID.

Examples:
  register export --to register.xlsx
  register export --to register.db --to-table people
  register --file people.xlsx export --to people.csv --to-backend csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := *a.cfg
			target.File = to
			target.Backend = toBackend
			if target.Backend == "" {
				target.Backend = config.InferBackend(to)
			}
			if target.Backend == config.BackendSheets {
				target.SpreadsheetID = to
				target.File = ""
			}
			if toSheet != "" {
				target.Sheet = toSheet
			}
			if toTable != "" {
				target.Table = toTable
			}
			if err := target.Validate(); err != nil {
				return err
			}

			store, source, err := a.openStore(cmd)
			if err != nil {
				return err
			}

			dest, err := backend.Open(cmd.Context(), &target)
			if err != nil {
				return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
			}

			rows := make([][]string, 0, store.Len())
			for _, r := range store.Records() {
				rows = append(rows, r.Values)
			}
			if err := dest.Adapter.Save(cmd.Context(), store.Headers(), rows); err != nil {
				return fmt.Errorf("exporting to %s: %w", dest.Name, err)
			}

			slog.Info("table exported", "from", source.Name, "to", dest.Name, "backend", dest.Kind, "rows", len(rows))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d row(s) to %s\n", len(rows), dest.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target file, or spreadsheet ID for sheets")
	cmd.Flags().StringVar(&toBackend, "to-backend", "", "target backend (default: from the --to extension)")
	cmd.Flags().StringVar(&toSheet, "to-sheet", "", "target sheet name (default: --sheet)")
	cmd.Flags().StringVar(&toTable, "to-table", "", "target table name (default: --table)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
