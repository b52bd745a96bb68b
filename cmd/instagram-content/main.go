package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
	"github.com/maheshrc27/community-automation/internal/service"
)

const defaultContentDir = "ai-builders-community"

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "instagram-content [dir]",
		Short: "Format a content directory for manual Instagram posting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(app.Config.PostsDir, defaultContentDir)
			if len(args) == 1 {
				dir = args[0]
			}

			doc, file, err := service.LoadPostContent(dir, "instagram")
			if err != nil {
				return err
			}
			post := service.NewManualPost(doc)

			app.Out.Header("Instagram Post Content")
			app.Out.Info("Source: %s", file)
			app.Out.Block("COPY THE TEXT BELOW:", post.Text)

			app.Out.Println()
			app.Out.Println("To post manually:")
			app.Out.Println("  1. Open Instagram and start a new post")
			app.Out.Println("  2. Choose the image for this post")
			app.Out.Println("  3. Paste the text above as the caption")
			app.Out.Println("  4. Share")
			app.Out.Println()

			app.Out.Info("Character count: %d", post.Length)
			if post.TooLong {
				app.Out.Warning("Caption is over Instagram's %d character limit", service.InstagramCaptionLimit)
			}
			return nil
		},
	}
}
