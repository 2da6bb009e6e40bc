package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
)

func newProfileCommand(opts *RootOptions) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if name == "" && email == "" {
				printUser(cmd, app.Store.Get().User)
				return nil
			}

			user, err := app.Client.UpdateProfile(cmd.Context(), api.ProfilePatch{
				Name:  name,
				Email: email,
			})
			if err != nil {
				return err
			}
			// Profile changes flow through the session store so the
			// persisted identity stays in sync with the server.
			app.Store.SetUser(user)
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			printUser(cmd, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")

	return cmd
}

func newPasswdCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Password management",
	}
	cmd.AddCommand(newPasswdChangeCommand(opts))
	cmd.AddCommand(newPasswdForgotCommand(opts))
	cmd.AddCommand(newPasswdResetCommand(opts))
	return cmd
}

func newPasswdChangeCommand(opts *RootOptions) *cobra.Command {
	var current, newPassword string

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := app.Client.UpdatePassword(cmd.Context(), current, newPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")
	cmd.MarkFlagRequired("current")
	cmd.MarkFlagRequired("new")

	return cmd
}

func newPasswdForgotCommand(opts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset token by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.Client.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "If an account exists for %s, a reset token is on its way.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newPasswdResetCommand(opts *RootOptions) *cobra.Command {
	var token, password string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Redeem a reset token for a new password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			user, err := app.Client.ResetPassword(cmd.Context(), token, password)
			if err != nil {
				return err
			}
			// The server logs the user in as part of the reset.
			app.Store.LoginSuccess(user)
			fmt.Fprintf(cmd.OutOrStdout(), "Password reset. Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "reset token")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.MarkFlagRequired("token")
	cmd.MarkFlagRequired("password")

	return cmd
}
