package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
	"github.com/maheshrc27/community-automation/internal/service"
)

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	root := &cobra.Command{
		Use:   "discussions",
		Short: "Manage GitHub Discussions for community challenges",
	}
	root.AddCommand(newCreateCmd(app), newFetchCmd(app))
	return root
}

func newCreateCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a discussion for every challenge in the wiki",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			discussions, err := app.DiscussionService()
			if err != nil {
				return err
			}

			gh := app.Config.GitHub
			app.Out.Header("Creating Challenge Discussions")
			app.Out.Info("Source: %s (%s)", gh.WikiRepo, gh.ChallengesDir)
			app.Out.Info("Target: %s", gh.DiscussionsRepo)

			results, err := discussions.CreateChallengeDiscussions(cmd.Context())
			if err != nil {
				return err
			}

			created := 0
			for _, r := range results {
				if r.Success {
					created++
					app.Out.Success("%s: %s", r.Title, r.URL)
				} else {
					app.Out.Error("%s: %s", r.File, r.Error)
				}
			}

			app.Out.Header("Summary")
			app.Out.Info("Created %d of %d discussions", created, len(results))
			app.Out.Info("Results written to %s", gh.ResultsFile)
			if created > 0 {
				app.Out.Info("URLs written to %s", gh.URLsFile)
			}

			app.Out.Println()
			app.Out.Println("Next steps:")
			app.Out.Printf("  1. Review the discussions at https://github.com/%s/discussions\n", gh.DiscussionsRepo)
			app.Out.Println("  2. Pin the most important challenges")
			app.Out.Println("  3. Share the links with the community")

			if created < len(results) {
				return fmt.Errorf("%d discussions could not be created", len(results)-created)
			}
			return nil
		},
	}
}

func newFetchCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download discussion metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			discussions, err := app.DiscussionService()
			if err != nil {
				return err
			}

			list, err := discussions.FetchDiscussions(cmd.Context())
			if err != nil {
				return err
			}

			app.Out.Success("Fetched %d discussions into %s", len(list), app.Config.GitHub.ResultsFile)
			for _, category := range service.DiscussionCategories(list) {
				app.Out.Println("  - " + category)
			}
			return nil
		},
	}
}
