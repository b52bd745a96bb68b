package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/service"
)

const recentCount = 5

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app, service.NewRandomProvider(service.CommunityPosts())))
}

func newRootCmd(app *cli.App, posts service.ContentProvider) *cobra.Command {
	root := &cobra.Command{
		Use:   "linkedin-post",
		Short: "Post community updates to LinkedIn",
		RunE: func(cmd *cobra.Command, args []string) error {
			return testConnection(cmd.Context(), app)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "test",
			Short: "Check the stored token and profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return testConnection(cmd.Context(), app)
			},
		},
		&cobra.Command{
			Use:   "post",
			Short: "Publish a random community update",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return publish(cmd.Context(), app, service.CommunityItem(posts))
			},
		},
		&cobra.Command{
			Use:   "custom <text...>",
			Short: "Publish custom text",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := service.CustomItem(strings.Join(args, " "))
				if err != nil {
					return err
				}
				return publish(cmd.Context(), app, item)
			},
		},
		&cobra.Command{
			Use:   "profile",
			Short: "Fetch and store the LinkedIn profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				profile, err := fetchProfile(cmd.Context(), app)
				if err != nil {
					return err
				}
				app.Out.Success("Profile saved to %s", app.Config.LinkedIn.ProfileFile)
				app.Out.Info("Name: %s %s", profile.FirstName, profile.LastName)
				app.Out.Info("Person URN: %s", profile.PersonURN)
				return nil
			},
		},
		&cobra.Command{
			Use:   "recent",
			Short: "Show recently published posts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showRecent(cmd.Context(), app)
			},
		},
		&cobra.Command{
			Use:   "campaign",
			Short: "Publish every scheduled content directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				summary, err := app.LinkedInCampaign().Run(cmd.Context())
				if err != nil {
					return err
				}
				app.PrintSummary(summary)
				if summary.Failed() > 0 {
					return errors.New("some posts failed")
				}
				return nil
			},
		},
	)
	return root
}

func fetchProfile(ctx context.Context, app *cli.App) (*models.Profile, error) {
	oauth := app.OAuthService()
	token, err := oauth.StoredToken(ctx)
	if err != nil {
		return nil, &service.AuthError{Reason: "no stored token, run linkedin-oauth first", Err: err}
	}
	if !token.IsUsable(time.Now()) {
		return nil, &service.AuthError{Reason: "token expired, run linkedin-oauth again"}
	}
	return oauth.FetchProfile(ctx, token.AccessToken)
}

func testConnection(ctx context.Context, app *cli.App) error {
	app.Out.Header("LinkedIn Connection Test")
	profile, err := fetchProfile(ctx, app)
	if err != nil {
		return err
	}
	app.Out.Success("Connected as %s %s", profile.FirstName, profile.LastName)
	app.Out.Info("Person URN: %s", profile.PersonURN)
	return nil
}

func publish(ctx context.Context, app *cli.App, item *models.ContentItem) error {
	app.Out.Block("Posting to LinkedIn", item.Text)

	result, err := app.LinkedInService().Post(ctx, item)
	if err != nil {
		var pubErr *service.PublishError
		if errors.As(err, &pubErr) && pubErr.InsufficientPermission() {
			app.Out.Warning("The token is missing the w_member_social scope, run linkedin-oauth again")
		}
		return err
	}

	app.Out.Success("Posted %s", result.ID)
	if result.URL != "" {
		app.Out.Info("View: %s", result.URL)
	}
	return nil
}

func showRecent(ctx context.Context, app *cli.App) error {
	entries, total, err := app.LinkedInService().Recent(ctx, recentCount)
	if err != nil {
		return err
	}

	app.Out.Header("Recent LinkedIn Posts")
	if total == 0 {
		app.Out.Info("No posts yet")
		return nil
	}
	for _, e := range entries {
		app.Out.Printf("%s  %-12s %s\n", e.LastPosted.Format(time.DateTime), e.PostType, e.LastPostID)
		if e.URL != "" {
			app.Out.Printf("    %s\n", e.URL)
		}
	}
	app.Out.Info("Showing %d of %d", len(entries), total)
	return nil
}
