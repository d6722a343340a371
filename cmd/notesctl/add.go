package main

import (
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Add a new note",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := notes.NewDraft()
			if err := f.apply(cmd, args, &draft, false); err != nil {
				return err
			}

			saved, err := a.editor.Save(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, renderCard(notes.NewCardView(*saved, now())))
			fmt.Fprintf(a.out, "Note added: %s\n", saved.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
