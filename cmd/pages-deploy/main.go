package main

import (
	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
)

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "pages-deploy",
		Short: "Enable GitHub Pages for the landing site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := app.PagesService()
			if err != nil {
				return err
			}

			app.Out.Header("GitHub Pages")
			result, err := pages.Enable(cmd.Context())
			if err != nil {
				gh := app.Config.GitHub
				app.Out.Warning("Enable Pages manually:")
				app.Out.Println("  1. Open " + pages.SettingsURL())
				app.Out.Printf("  2. Under Source choose branch %q and folder %q\n", gh.PagesBranch, gh.PagesPath)
				app.Out.Println("  3. Save and wait a few minutes for the first build")
				return err
			}

			if result.AlreadyEnabled {
				app.Out.Info("GitHub Pages is already enabled")
			} else {
				app.Out.Success("GitHub Pages enabled")
			}
			app.Out.Info("Site: %s", result.URL)
			return nil
		},
	}
}
