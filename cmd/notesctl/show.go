package main

import (
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, ok := a.store.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, args[0])
			}

			fmt.Fprintln(a.out, renderCard(notes.NewCardView(note, now())))
			return nil
		},
	}
}
