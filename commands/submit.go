package commands

import (
	"fmt"

	"civicsync-client/middlewares"
	"civicsync-client/models"
	"civicsync-client/workflow"

	"github.com/spf13/cobra"
)

func submitCmd(app *App) *cobra.Command {
	draft := models.NewDraft()
	var category, photo string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Report a new issue, optionally with a photo",
		RunE: app.guarded(middlewares.RequireAuth(), func(cmd *cobra.Command, args []string) error {
			draft.Category = models.IssueCategory(category)
			if photo != "" {
				f, err := models.LoadAttachment(photo)
				if err != nil {
					return err
				}
				if err := draft.AttachFile(f); err != nil {
					return err
				}
			}

			uploaded := false
			submitter := workflow.NewSubmitter(app.Client, app.Client,
				workflow.WithLocation(app.Config.Location),
				workflow.WithLogger(app.Log),
				workflow.WithPhaseObserver(func(p workflow.Phase) {
					switch p {
					case workflow.PhaseUploading:
						uploaded = true
						fmt.Fprintln(app.Out, "Uploading image...")
					case workflow.PhaseSubmitting:
						if uploaded {
							fmt.Fprintln(app.Out, "Image uploaded successfully!")
						}
						fmt.Fprintln(app.Out, "Submitting issue...")
					}
				}),
			)

			issue, err := submitter.Submit(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Successfully submitted issue! ID: %d\n", issue.ID)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "short summary of the problem")
	cmd.Flags().StringVarP(&draft.Description, "description", "d", "", "what is wrong and where")
	cmd.Flags().StringVarP(&category, "category", "c", string(models.DefaultCategory), "Pothole, Streetlight Out, Sanitation, Vandalism or Other")
	cmd.Flags().StringVar(&photo, "photo", "", "path to an image of at most 5MB")
	return cmd
}
