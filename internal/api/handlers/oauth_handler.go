package handlers

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/maheshrc27/community-automation/internal/service"
	"github.com/maheshrc27/community-automation/pkg/utils"
)

type OAuthHandler struct {
	oauth       service.OAuthService
	redirectURI string
	secretKey   string
	tokenFile   string

	once sync.Once
	done chan struct{}
}

// NewOAuthHandler signs state with secretKey, or with a per-process random
// key when none is configured.
func NewOAuthHandler(oauth service.OAuthService, redirectURI, secretKey, tokenFile string) (*OAuthHandler, error) {
	if secretKey == "" {
		key, err := utils.GenerateRandomKey(32)
		if err != nil {
			return nil, err
		}
		secretKey = key
	}
	return &OAuthHandler{
		oauth:       oauth,
		redirectURI: redirectURI,
		secretKey:   secretKey,
		tokenFile:   tokenFile,
		done:        make(chan struct{}),
	}, nil
}

func (h *OAuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/callback", h.Callback)
}

// Done is closed after the first successful authorization.
func (h *OAuthHandler) Done() <-chan struct{} {
	return h.done
}

func (h *OAuthHandler) Index(c *fiber.Ctx) error {
	state, err := utils.GenerateState(h.secretKey, utils.StateTTL)
	if err != nil {
		return err
	}
	return render(c, fiber.StatusOK, indexPage, fiber.Map{
		"AuthURL": h.oauth.AuthURL(h.redirectURI, state),
	})
}

func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	if oauthErr := c.Query("error"); oauthErr != "" {
		desc := c.Query("error_description", "No description provided")
		logrus.WithFields(logrus.Fields{"error": oauthErr, "description": desc}).Error("oauth error")
		return render(c, fiber.StatusBadRequest, errorPage, fiber.Map{
			"Title":       "OAuth Error",
			"Error":       oauthErr,
			"Description": desc,
			"Hint":        "Please check your LinkedIn app configuration and try again.",
		})
	}

	code := c.Query("code")
	if code == "" {
		return render(c, fiber.StatusBadRequest, errorPage, fiber.Map{
			"Title": "OAuth Error",
			"Error": "missing authorization code",
		})
	}

	if _, err := utils.ValidateState(h.secretKey, c.Query("state")); err != nil {
		return render(c, fiber.StatusBadRequest, errorPage, fiber.Map{
			"Title": "OAuth Error",
			"Error": "invalid or expired state, start again from the authorization link",
		})
	}

	token, profile, err := h.oauth.Authorize(c.UserContext(), code, h.redirectURI)
	if err != nil {
		logrus.WithError(err).Error("token exchange failed")
		return render(c, fiber.StatusInternalServerError, errorPage, fiber.Map{
			"Title": "Token Exchange Failed",
			"Error": err.Error(),
			"Hint":  "Please check your configuration and try again.",
		})
	}

	logrus.WithFields(logrus.Fields{
		"expires_at": token.ExpiresAt,
		"person_urn": profile.PersonURN,
	}).Info("oauth completed")

	h.once.Do(func() { close(h.done) })

	return render(c, fiber.StatusOK, successPage, fiber.Map{
		"TokenFile": h.tokenFile,
		"PersonURN": profile.PersonURN,
	})
}

func render(c *fiber.Ctx, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
