// Package cli implements the taskdeck command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

// RootOptions holds global flag overrides applied on top of the loaded
// configuration.
type RootOptions struct {
	BaseURL  string
	StateDir string
	LogLevel string
	LogFmt   string
}

// NewRootCommand creates the root command for the taskdeck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "taskdeck - terminal client for the todo service",
		Long:          "A terminal client for a hosted todo service: manage your todos, session, and profile from the command line.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.StateDir, "state-dir", "", "state directory (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFmt, "log-format", "", "log format (text|json|logfmt)")

	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newWhoamiCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newPasswdCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newEditCommand(opts))
	cmd.AddCommand(newDoneCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newTUICommand(opts))

	return cmd
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
