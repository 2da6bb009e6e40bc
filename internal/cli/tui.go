package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
)

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit todos interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			return ui.Run(cmd.Context(), app.Todos)
		},
	}
}
