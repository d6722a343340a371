package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPurgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all completed notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.store.DeleteCompleted(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Completed notes deleted: %d\n", removed)
			return nil
		},
	}
}
