package commands

import (
	"errors"
	"fmt"

	"civicsync-client/middlewares"
	"civicsync-client/models"

	"github.com/spf13/cobra"
)

func profileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or change your account",
	}
	cmd.AddCommand(profileShowCmd(app), profileUpdateCmd(app), profileDeleteCmd(app))
	return cmd
}

func profileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			p, err := app.Client.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Username: %s\nEmail:    %s\nRole:     %s\n", p.Username, p.Email, p.Role)
			return nil
		}),
	}
}

func profileUpdateCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your email address",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			p, err := app.Client.UpdateProfile(cmd.Context(), models.ProfileUpdate{Email: email})
			if err != nil {
				return err
			}
			success(app.Out, "Profile updated. Email is now %s", p.Email)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "new email address")
	return cmd
}

func profileDeleteCmd(app *App) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and sign out",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("this permanently deletes your account; pass --yes to confirm")
			}
			if err := app.Client.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			if err := app.clearSession(); err != nil {
				return err
			}
			success(app.Out, "Account deleted.")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm account deletion")
	return cmd
}
