package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			// bootstrap already runs the migration
			e, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			e.close()
			return nil
		},
	}
}
