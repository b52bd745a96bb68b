package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
)

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "instagram-post",
		Short: "Publish scheduled content directories to Instagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Out.Header("Instagram Posting")
			app.Out.Info("Scanning %s", app.Config.PostsDir)

			summary, err := app.InstagramCampaign().Run(cmd.Context())
			if err != nil {
				return err
			}
			app.PrintSummary(summary)

			if n := summary.Failed(); n > 0 {
				return fmt.Errorf("%d of %d posts failed", n, summary.Processed)
			}
			return nil
		},
	}
}
