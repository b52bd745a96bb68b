package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/transfer"
)

type OAuthService interface {
	AuthURL(redirectURI, state string) string
	Exchange(ctx context.Context, code, redirectURI string) (*models.TokenRecord, error)
	Authorize(ctx context.Context, code, redirectURI string) (*models.TokenRecord, *models.Profile, error)
	FetchProfile(ctx context.Context, accessToken string) (*models.Profile, error)
	TestToken(ctx context.Context, accessToken string) bool
	StoredToken(ctx context.Context) (*models.TokenRecord, error)
}

type oauthService struct {
	cfg      config.LinkedIn
	tokens   repository.TokenRepository
	profiles repository.ProfileRepository
	client   *http.Client
	now      func() time.Time
}

func NewOAuthService(cfg config.LinkedIn, tokens repository.TokenRepository, profiles repository.ProfileRepository) OAuthService {
	return &oauthService{
		cfg:      cfg,
		tokens:   tokens,
		profiles: profiles,
		client:   http.DefaultClient,
		now:      time.Now,
	}
}

func (s *oauthService) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       s.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.cfg.OAuthURL + "/authorization",
			TokenURL:  s.cfg.OAuthURL + "/accessToken",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (s *oauthService) AuthURL(redirectURI, state string) string {
	return s.oauthConfig(redirectURI).AuthCodeURL(state)
}

// Exchange redeems an authorization code. The raw provider body is kept on
// failure, which is why this does not go through oauth2.Config.Exchange.
func (s *oauthService) Exchange(ctx context.Context, code, redirectURI string) (*models.TokenRecord, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is empty")
	}

	conf := s.oauthConfig(redirectURI)
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", conf.ClientID)
	data.Set("client_secret", conf.ClientSecret)
	data.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, conf.Endpoint.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("token request failed")
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("error reading token response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &ExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result transfer.LinkedInToken
	if err := json.Unmarshal(body, &result); err != nil || result.AccessToken == "" {
		return nil, &ExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	now := s.now()
	token := &models.TokenRecord{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		ExpiresAt:   GetExpiresAt(now, result.ExpiresIn),
		TokenType:   result.TokenType,
		Scope:       models.ParseScopes(result.Scope),
		CreatedAt:   now,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if len(token.Scope) == 0 {
		token.Scope = models.Scopes(s.cfg.Scopes)
	}

	return token, nil
}

// Authorize runs the whole interactive flow: exchange, persist the token,
// then derive and persist the actor identity.
func (s *oauthService) Authorize(ctx context.Context, code, redirectURI string) (*models.TokenRecord, *models.Profile, error) {
	token, err := s.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, nil, err
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, nil, fmt.Errorf("failed to save token: %w", err)
	}
	logrus.WithField("expires_at", token.ExpiresAt).Info("linkedin token saved")

	profile, err := s.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return token, nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return token, nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return token, profile, nil
}

func (s *oauthService) FetchProfile(ctx context.Context, accessToken string) (*models.Profile, error) {
	client := apiClient(ctx, s.client, accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.APIURL+"/v2/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("error reading profile response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Reason: "access token rejected", Err: fmt.Errorf("profile request returned %d: %s", resp.StatusCode, body)}
	}
	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("profile request returned %d: %s", resp.StatusCode, body)
	}

	var info transfer.LinkedInUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("error parsing profile response: %w", err)
	}
	if info.PersonID() == "" {
		return nil, fmt.Errorf("could not extract person id from profile response: %s", body)
	}

	return &models.Profile{
		PersonURN:   models.PersonURN(info.PersonID()),
		PersonID:    info.PersonID(),
		FirstName:   orNA(info.FirstName()),
		LastName:    orNA(info.LastName()),
		ProfileData: json.RawMessage(body),
		RetrievedAt: s.now(),
	}, nil
}

func (s *oauthService) TestToken(ctx context.Context, accessToken string) bool {
	if _, err := s.FetchProfile(ctx, accessToken); err != nil {
		logrus.WithError(err).Info("access token test failed")
		return false
	}
	return true
}

func (s *oauthService) StoredToken(ctx context.Context) (*models.TokenRecord, error) {
	return s.tokens.Load(ctx)
}

// apiClient returns an HTTP client that sends accessToken as a bearer token
// and uses base for transport.
func apiClient(ctx context.Context, base *http.Client, accessToken string) *http.Client {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
