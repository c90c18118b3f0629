package commands

import (
	"errors"
	"fmt"
	"os"

	"civicsync-client/config"

	"github.com/spf13/cobra"
)

func configCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the civicsync configuration file",
	}
	cmd.AddCommand(configInitCmd(app))
	return cmd
}

func configInitCmd(app *App) *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.UserConfigPath()
			}
			if path == "" {
				return errors.New("no home directory; pass --path")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; pass --force to overwrite", path)
			}
			if err := app.Config.SaveToFile(path); err != nil {
				return err
			}
			success(app.Out, "Wrote configuration to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file to write (default ~/.config/civicsync/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
