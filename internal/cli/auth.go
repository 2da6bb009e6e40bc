package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.Client.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run 'taskdeck login' to sign in.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			user, err := app.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			app.Store.LoginSuccess(user)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			// Best effort: the local session is cleared even if the server
			// call fails, so a dead backend cannot pin a stale login.
			if err := app.Client.Logout(cmd.Context()); err != nil {
				app.Logger.Debug("server logout failed", "err", err)
			}
			app.Store.Logout()
			app.Client.ClearSessionCookies()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			user := app.Store.Get().User
			printUser(cmd, user)
			return nil
		},
	}
}

func printUser(cmd *cobra.Command, user *api.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(out, "  id:             %s\n", user.ID)
	fmt.Fprintf(out, "  email verified: %t\n", user.IsEmailVerified)
	fmt.Fprintf(out, "  member since:   %s\n", user.CreatedAt.Format("2006-01-02"))
}
