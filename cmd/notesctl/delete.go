package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note, after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			note, ok := a.store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, id)
			}

			guard := notes.NewDeleteGuard(0)
			guard.Activate(id)

			if !yes {
				fmt.Fprintln(a.out, renderCard(notes.NewCardView(note, now())))
				fmt.Fprint(a.out, "Delete this note? [y/N]: ")
				answer, _ := bufio.NewReader(a.in).ReadString('\n')
				if !isYes(answer) {
					guard.Disarm()
				}
			}

			if !guard.Activate(id) {
				fmt.Fprintln(a.out, "Delete cancelled")
				return nil
			}

			if err := a.store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Note deleted: %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
