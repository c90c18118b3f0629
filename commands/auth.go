package commands

import (
	"errors"
	"fmt"
	"time"

	"civicsync-client/middlewares"
	"civicsync-client/models"
	"civicsync-client/session"
	authUtils "civicsync-client/utils"

	"github.com/spf13/cobra"
)

func loginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			resp, err := app.Client.Login(cmd.Context(), models.LoginRequest{Username: username, Password: password})
			if err != nil {
				return err
			}
			if err := app.saveSession(session.FromAuth(resp)); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Login successful! Welcome back.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func registerCmd(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a citizen account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return errors.New("--username, --email and --password are required")
			}
			resp, err := app.Client.Register(cmd.Context(), models.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := app.saveSession(session.FromAuth(resp)); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Registration successful! Welcome!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.clearSession(); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(app.Out, "%s (%s)\n", app.Session.Username, app.Session.Role)
			if info, err := authUtils.InspectToken(app.Session.Credential()); err == nil && !info.ExpiresAt.IsZero() {
				fmt.Fprintf(app.Out, "session expires %s\n", info.ExpiresAt.Format(time.RFC1123))
			}
			return nil
		}),
	}
}
