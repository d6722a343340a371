package main

import (
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "edit [id] [content...]",
		Short: "Edit an existing note, only the given fields change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			existing, ok := a.store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, id)
			}

			draft := notes.DraftFromNote(existing)
			if err := f.apply(cmd, args[1:], &draft, true); err != nil {
				return err
			}

			saved, err := a.editor.Save(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, renderCard(notes.NewCardView(*saved, now())))
			fmt.Fprintf(a.out, "Note updated: %s\n", saved.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
