package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maheshrc27/community-automation/internal/api/handlers"
	"github.com/maheshrc27/community-automation/internal/api/middleware"
	"github.com/maheshrc27/community-automation/internal/cli"
	"github.com/maheshrc27/community-automation/internal/console"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/service"
	"github.com/maheshrc27/community-automation/pkg/utils"
)

const shutdownDelay = 3 * time.Second

func main() {
	app := cli.New()
	app.Execute(newRootCmd(app))
}

func newRootCmd(app *cli.App) *cobra.Command {
	var server, status, test bool

	cmd := &cobra.Command{
		Use:   "linkedin-oauth",
		Short: "Set up LinkedIn OAuth credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case status:
				return showStatus(ctx, app)
			case test:
				return testToken(ctx, app)
			case server:
				return runServer(app)
			}
			return interactive(ctx, app, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVarP(&server, "server", "s", false, "run a local callback server")
	cmd.Flags().BoolVar(&status, "status", false, "show the stored token")
	cmd.Flags().BoolVar(&test, "test", false, "test the stored token against the API")
	return cmd
}

func requireClient(app *cli.App) error {
	if app.Config.LinkedIn.ClientID == "" || app.Config.LinkedIn.ClientSecret == "" {
		return errors.New("LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET must be set")
	}
	return nil
}

func interactive(ctx context.Context, app *cli.App, in io.Reader) error {
	out := app.Out
	oauth := app.OAuthService()
	out.Header("LinkedIn OAuth Setup")

	token, err := oauth.StoredToken(ctx)
	switch {
	case err == nil && token.IsUsable(time.Now()):
		out.Success("Existing token found, expires %s", token.ExpiresAt.Format(time.DateTime))
		if oauth.TestToken(ctx, token.AccessToken) {
			out.Success("Token is valid, nothing to do")
			return nil
		}
		out.Warning("Stored token was rejected, starting a new authorization")
	case err == nil:
		out.Warning("Stored token has expired, starting a new authorization")
	case !errors.Is(err, repository.ErrNotFound):
		out.Warning("Could not read stored token: %s", err)
	}

	if err := requireClient(app); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	out.Println("Choose an authorization method:")
	out.Println("  1. GitHub Pages redirect (copy the code from the page)")
	out.Println("  2. Local callback server")
	out.Println("  3. Manual (paste the code from the redirect URL)")
	choice, err := prompt(app.Out, reader, "Method [1]: ")
	if err != nil {
		return err
	}

	redirectURI := app.Config.LinkedIn.RedirectURI
	switch choice {
	case "", "1":
	case "2":
		return runServer(app)
	case "3":
		redirectURI = app.Config.LinkedIn.LocalRedirectURI
	default:
		return fmt.Errorf("unknown method %q", choice)
	}

	// the code is pasted back by hand, so the state is a plain nonce
	state, err := utils.GenerateRandomKey(16)
	if err != nil {
		return err
	}

	out.Info("Open this URL in your browser and approve access:")
	out.Println(oauth.AuthURL(redirectURI, state))

	code, err := prompt(app.Out, reader, "Authorization code: ")
	if err != nil {
		return err
	}

	token, profile, err := oauth.Authorize(ctx, code, redirectURI)
	if err != nil {
		return err
	}
	printAuthorized(app, token, profile)
	return nil
}

func prompt(out *console.Printer, r *bufio.Reader, label string) (string, error) {
	out.Prompt(label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printAuthorized(app *cli.App, token *models.TokenRecord, profile *models.Profile) {
	app.Out.Success("Token saved to %s", app.Config.LinkedIn.TokenFile)
	app.Out.Info("Expires: %s", token.ExpiresAt.Format(time.DateTime))
	app.Out.Info("Person URN: %s", profile.PersonURN)
	app.Out.Info("Add these to your CI secrets:")
	app.Out.Println("  LINKEDIN_ACCESS_TOKEN=" + token.AccessToken)
	app.Out.Println("  LINKEDIN_PERSON_URN=" + profile.PersonURN)
}

func showStatus(ctx context.Context, app *cli.App) error {
	token, err := app.OAuthService().StoredToken(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &service.AuthError{Reason: "no token stored, run linkedin-oauth first"}
		}
		return err
	}

	now := time.Now()
	app.Out.Header("LinkedIn Token Status")
	app.Out.Info("Created: %s", token.CreatedAt.Format(time.DateTime))
	app.Out.Info("Expires: %s", token.ExpiresAt.Format(time.DateTime))
	app.Out.Info("Type: %s", token.TokenType)
	app.Out.Info("Scope: %s", token.Scope)

	if !token.IsUsable(now) {
		app.Out.Error("Token has expired")
		return nil
	}
	days := token.DaysLeft(now)
	if time.Duration(days)*24*time.Hour <= app.Config.TokenExpiryWarning {
		app.Out.Warning("Token expires in %d days", days)
		return nil
	}
	app.Out.Success("Token valid for %d more days", days)
	return nil
}

func testToken(ctx context.Context, app *cli.App) error {
	oauth := app.OAuthService()
	token, err := oauth.StoredToken(ctx)
	if err != nil {
		return err
	}
	if !token.IsUsable(time.Now()) {
		return &service.AuthError{Reason: "token expired, run linkedin-oauth again"}
	}
	if !oauth.TestToken(ctx, token.AccessToken) {
		return &service.AuthError{Reason: "token rejected by LinkedIn, run linkedin-oauth again"}
	}
	app.Out.Success("Token is valid")
	return nil
}

func runServer(app *cli.App) error {
	if err := requireClient(app); err != nil {
		return err
	}

	handler, err := handlers.NewOAuthHandler(
		app.OAuthService(),
		app.Config.LinkedIn.LocalRedirectURI,
		app.Config.SecretKey,
		app.Config.LinkedIn.TokenFile,
	)
	if err != nil {
		return err
	}

	server := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	server.Use(middleware.RequestLogger())
	handler.RegisterRoutes(server)

	addr := fmt.Sprintf(":%d", app.Config.OAuthServerPort)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.Listen(addr)
	}()

	app.Out.Success("OAuth server running on http://localhost%s", addr)
	app.Out.Info("Open http://localhost%s in your browser to authorize", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
		logrus.Info("shutting down oauth server")
	case <-handler.Done():
		app.Out.Success("Authorization complete, stopping server")
		time.Sleep(shutdownDelay)
	}

	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
