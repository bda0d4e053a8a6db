package main

import (
	"fmt"

	register "github.com/ideamans/go-register"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		column string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search TEXT",
		Short: "Print records containing TEXT, ignoring case",
		Long: `Print records with a value containing TEXT, ignoring case. Each match is
printed with its row number, as used by the edit and delete menu entries.

Examples:
  register search ann
  register search oslo --column city
  register search a --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.openStore(cmd)
			if err != nil {
				return err
			}

			matches, err := store.Query(register.Query{
				Conditions: []register.Condition{{Column: column, Operator: register.OpContains, Value: args[0]}},
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d result(s) found:\n", len(matches))
			for _, m := range matches {
				fmt.Fprintf(out, "%d. %s\n", m.Row, m.Record)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "only search this column")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many matches (0 for all)")
	return cmd
}
