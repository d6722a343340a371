package main

import (
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a note as completed, or back as pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := a.store.Get(id); !ok {
				return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, id)
			}

			if err := a.store.ToggleCompleted(cmd.Context(), id); err != nil {
				return err
			}

			note, _ := a.store.Get(id)
			state := "pending"
			if note.Completed {
				state = "completed"
			}
			fmt.Fprintf(a.out, "Note %s is now %s\n", id, state)
			return nil
		},
	}
}
