package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"civicsync-client/models"

	"github.com/fatih/color"
)

var statusColors = map[models.IssueStatus]*color.Color{
	models.Pending:    color.New(color.FgYellow),
	models.InProgress: color.New(color.FgCyan),
	models.Resolved:   color.New(color.FgGreen),
}

// statusLabel colours a status the way the dashboard badges do.
func statusLabel(s models.IssueStatus) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

func success(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.GreenString(format, a...))
}

// printIssues writes one row per issue. withOwner adds the submitter column
// shown on the admin dashboard.
func printIssues(w io.Writer, issues []models.Issue, withOwner bool, empty string) {
	if len(issues) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withOwner {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tSUBMITTED BY\tCREATED")
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tCREATED")
	}
	for _, issue := range issues {
		created := issue.CreatedAt.Local().Format("2006-01-02 15:04")
		if withOwner {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				issue.ID, issue.Title, issue.Category, statusLabel(issue.Status), issue.SubmittedByUsername, created)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				issue.ID, issue.Title, issue.Category, statusLabel(issue.Status), created)
		}
	}
	tw.Flush()
}
