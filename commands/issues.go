package commands

import (
	"fmt"
	"strconv"

	"civicsync-client/middlewares"
	"civicsync-client/models"

	"github.com/spf13/cobra"
)

func myIssuesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "my-issues",
		Short: "List the issues you have reported",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			issues, err := app.Client.MyIssues(cmd.Context())
			if err != nil {
				return err
			}
			printIssues(app.Out, issues, false, "You have not submitted any issues yet.")
			return nil
		}),
	}
}

func adminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Triage reported issues (administrators only)",
	}
	cmd.AddCommand(adminListCmd(app), adminStatusCmd(app), adminDeleteCmd(app))
	return cmd
}

func adminListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every reported issue, newest first",
		RunE: app.guarded(middlewares.RequireAdmin(), func(cmd *cobra.Command, args []string) error {
			issues, err := app.Client.AllIssues(cmd.Context())
			if err != nil {
				return err
			}
			printIssues(app.Out, issues, true, "No issues have been reported.")
			return nil
		}),
	}
}

func adminStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <PENDING|IN_PROGRESS|RESOLVED>",
		Short: "Change the status of an issue",
		Args:  cobra.ExactArgs(2),
		RunE: app.guarded(middlewares.RequireAdmin(), func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return err
			}
			issue, err := app.Client.UpdateIssueStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			success(app.Out, "Issue %d is now %s", issue.ID, issue.Status)
			return nil
		}),
	}
}

func adminDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an issue and its photo",
		Args:  cobra.ExactArgs(1),
		RunE: app.guarded(middlewares.RequireAdmin(), func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			if err := app.Client.DeleteIssue(cmd.Context(), id); err != nil {
				return err
			}
			success(app.Out, "Issue %d deleted", id)
			return nil
		}),
	}
}

func parseIssueID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid issue id %q", s)
	}
	return id, nil
}
