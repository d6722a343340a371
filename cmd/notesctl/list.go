package main

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filter   string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := notes.ParseFilterMode(filter)
			if err != nil {
				return err
			}

			view := notes.BuildListView(a.store.List(), mode, now())

			if listJSON {
				encoder := json.NewEncoder(a.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(view)
			}

			fmt.Fprintln(a.out, renderListView(view))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(notes.FilterAll), "filter [all | completed | pending]")
	cmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	return cmd
}
