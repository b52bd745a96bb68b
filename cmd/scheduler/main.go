package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/cli"
	job "github.com/maheshrc27/community-automation/internal/jobs"
)

const tokenCheckSpec = "0 0 8 * * *"

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run the posting campaigns on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			campaigns := job.NewCampaignJob(app.LinkedInCampaign(), app.InstagramCampaign())
			tokenCheck := job.NewTokenExpiryJob(app.TokenRepository(), app.Config.TokenExpiryWarning)

			if once {
				if _, err := tokenCheck.Check(cmd.Context()); err != nil {
					logrus.WithError(err).Warn("token expiry check failed")
				}
				summaries, err := campaigns.Run(cmd.Context())
				failed := 0
				for _, s := range summaries {
					app.PrintSummary(s)
					failed += s.Failed()
				}
				if err != nil {
					return err
				}
				if failed > 0 {
					return fmt.Errorf("%d posts failed", failed)
				}
				return nil
			}

			c := cron.New()
			if err := c.AddFunc(app.Config.ScheduleCron, campaigns.RunScheduled); err != nil {
				return fmt.Errorf("invalid SCHEDULE_CRON %q: %w", app.Config.ScheduleCron, err)
			}
			if err := c.AddFunc(tokenCheckSpec, tokenCheck.CheckTokens); err != nil {
				return err
			}
			c.Start()
			tokenCheck.CheckTokens()

			app.Out.Success("Scheduler running, campaigns on %q", app.Config.ScheduleCron)
			gracefulShutdown(c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run the campaigns once and exit")
	return cmd
}

func gracefulShutdown(c *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	logrus.WithField("signal", sig.String()).Info("shutting down scheduler")
	c.Stop()
	logrus.Info("scheduler stopped")
}
