package cli

import (
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/console"
	"github.com/maheshrc27/community-automation/internal/logging"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/queue"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/service"
)

// App holds what every command needs: configuration and the console.
type App struct {
	Config *config.Config
	Out    *console.Printer
}

// New loads an optional .env file, reads the environment and configures
// logging.
func New() *App {
	envErr := godotenv.Load()

	cfg := config.LoadConfig()
	logging.Setup(cfg.LogLevel)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logrus.WithError(envErr).Warn("failed to load .env")
	}

	return &App{Config: cfg, Out: console.New()}
}

func (a *App) TokenRepository() repository.TokenRepository {
	return repository.NewTokenRepository(a.Config.LinkedIn.TokenFile)
}

func (a *App) ProfileRepository() repository.ProfileRepository {
	return repository.NewProfileRepository(a.Config.LinkedIn.ProfileFile)
}

func (a *App) OAuthService() service.OAuthService {
	return service.NewOAuthService(a.Config.LinkedIn, a.TokenRepository(), a.ProfileRepository())
}

func (a *App) LinkedInService() service.LinkedInService {
	return service.NewLinkedInService(
		a.Config.LinkedIn,
		a.TokenRepository(),
		a.ProfileRepository(),
		repository.NewPostingLogRepository(a.Config.LinkedIn.LogFile),
	)
}

func (a *App) InstagramService() service.InstagramService {
	return service.NewInstagramService(
		a.Config.Instagram,
		repository.NewPostingLogRepository(a.Config.Instagram.LogFile),
		service.NewR2Service(a.Config.R2),
	)
}

func (a *App) LinkedInCampaign() service.CampaignService {
	return service.NewCampaignService(
		a.Config.PostsDir,
		a.LinkedInService(),
		repository.NewPostingLogRepository(a.Config.LinkedIn.LogFile),
		queue.NewRunner(a.Config.PublishDelay),
	)
}

func (a *App) InstagramCampaign() service.CampaignService {
	return service.NewCampaignService(
		a.Config.PostsDir,
		a.InstagramService(),
		repository.NewPostingLogRepository(a.Config.Instagram.LogFile),
		queue.NewRunner(a.Config.PublishDelay),
	)
}

func (a *App) DiscussionService() (service.DiscussionService, error) {
	client, err := service.NewGitHubClient(a.Config.GitHub, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	results := repository.NewResultsRepository(a.Config.GitHub.ResultsFile, a.Config.GitHub.URLsFile)
	return service.NewDiscussionService(a.Config.GitHub, client, results, queue.NewRunner(a.Config.GitHub.DiscussionDelay)), nil
}

func (a *App) PagesService() (service.PagesService, error) {
	client, err := service.NewGitHubClient(a.Config.GitHub, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	return service.NewPagesService(a.Config.GitHub, client), nil
}

// PrintSummary reports a campaign run item by item.
func (a *App) PrintSummary(summary *models.RunSummary) {
	for _, item := range summary.Items {
		switch item.Status {
		case models.ItemStatusPosted:
			a.Out.Success("Posted %s to %s (%s)", item.PostID, summary.Platform, item.Result.ID)
		case models.ItemStatusFailed:
			a.Out.Error("%s: %s", item.Dir, item.Reason)
		default:
			a.Out.Info("⏭️  %s: %s", item.Dir, item.Reason)
		}
	}
	a.Out.Info("📊 Processed %d posts, %d successful", summary.Processed, summary.Successful)
}

// Execute runs root and exits non-zero on error.
func (a *App) Execute(root *cobra.Command) {
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		a.Out.Error("%s", err)
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			a.Out.Info("Credentials need attention: %s", authErr.Reason)
		}
		os.Exit(1)
	}
}
