package main

import (
	"fmt"

	register "github.com/ideamans/go-register"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.openStore(cmd)
			if err != nil {
				return err
			}

			for _, line := range register.FormatList(store.Records()) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the row count and the column names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.openStore(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := store.Stats()
			fmt.Fprintf(out, "Total rows: %d\n", stats.Rows)
			fmt.Fprintln(out, "Schema:")
			for _, h := range stats.Headers {
				fmt.Fprintf(out, "- %s\n", h)
			}
			return nil
		},
	}
}
