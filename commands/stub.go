package commands

import (
	"civicsync-client/stubserver"

	"github.com/spf13/cobra"
)

func stubServerCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run an in-memory backend for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			stub := app.Config.Stub
			if addr == "" {
				addr = stub.Addr
			}
			srv, err := stubserver.New(stubserver.Options{
				JWTSecret:   []byte(stub.JWTSecret),
				AllowOrigin: stub.AllowOrigin,
				Admin: &stubserver.Account{
					Username: stub.AdminUsername,
					Email:    stub.AdminEmail,
					Password: stub.AdminPassword,
				},
				Logger: app.Log.WithField("component", "stub"),
			})
			if err != nil {
				return err
			}
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
