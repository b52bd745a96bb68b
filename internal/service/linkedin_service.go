package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/transfer"
)

const (
	linkedInVersion  = "202408"
	linkedInShareURL = "https://www.linkedin.com/feed/update/"
)

type LinkedInService interface {
	Poster
	Credentials(ctx context.Context) (*Credentials, error)
	Publish(ctx context.Context, item *models.ContentItem, creds *Credentials) (*models.PostResult, error)
	Recent(ctx context.Context, n int) ([]*models.PostingLogEntry, int, error)
}

// Credentials are what a publish call needs: a usable token and the actor
// the post is attributed to.
type Credentials struct {
	AccessToken string
	ActorURN    string
}

type linkedInService struct {
	cfg      config.LinkedIn
	tokens   repository.TokenRepository
	profiles repository.ProfileRepository
	logs     repository.PostingLogRepository
	client   *http.Client
	now      func() time.Time
}

func NewLinkedInService(
	cfg config.LinkedIn,
	tokens repository.TokenRepository,
	profiles repository.ProfileRepository,
	logs repository.PostingLogRepository) LinkedInService {
	return &linkedInService{
		cfg:      cfg,
		tokens:   tokens,
		profiles: profiles,
		logs:     logs,
		client:   http.DefaultClient,
		now:      time.Now,
	}
}

func (s *linkedInService) Platform() string {
	return models.PlatformLinkedIn
}

// Credentials prefers LINKEDIN_ACCESS_TOKEN and LINKEDIN_PERSON_URN, then
// falls back to the token and profile files written by the OAuth setup.
func (s *linkedInService) Credentials(ctx context.Context) (*Credentials, error) {
	creds := &Credentials{AccessToken: s.cfg.AccessToken, ActorURN: s.cfg.PersonURN}

	if creds.AccessToken == "" {
		token, err := s.tokens.Load(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &AuthError{Reason: "no LinkedIn token found, run linkedin-oauth first", Err: err}
			}
			return nil, err
		}
		if !token.IsUsable(s.now()) {
			return nil, &AuthError{Reason: "access token has expired, run linkedin-oauth to reauthenticate"}
		}
		creds.AccessToken = token.AccessToken
	}

	if creds.ActorURN == "" {
		profile, err := s.profiles.Load(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &AuthError{Reason: "person URN not found, run linkedin-oauth first", Err: err}
			}
			return nil, err
		}
		creds.ActorURN = profile.PersonURN
	}

	return creds, nil
}

func (s *linkedInService) Post(ctx context.Context, item *models.ContentItem) (*models.PostResult, error) {
	creds, err := s.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	return s.Publish(ctx, item, creds)
}

// Publish issues exactly one create call. On success the posting log entry
// for item.ID is replaced; on failure the log is left alone.
func (s *linkedInService) Publish(ctx context.Context, item *models.ContentItem, creds *Credentials) (*models.PostResult, error) {
	payload, err := json.Marshal(transfer.NewUGCPost(creds.ActorURN, item.Text))
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("LinkedIn-Version", linkedInVersion)

	resp, err := apiClient(ctx, s.client, creds.AccessToken).Do(req)
	if err != nil {
		logrus.WithError(err).Warn("linkedin publish request failed")
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "post_id": item.ID}).Warn("linkedin rejected post")
		return nil, classifyPublishError("LinkedIn", resp.StatusCode, body)
	}

	var created transfer.UGCPostResponse
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			return nil, fmt.Errorf("error parsing response: %w", err)
		}
	}
	if created.ID == "" {
		created.ID = resp.Header.Get("X-RestLi-Id")
	}
	if created.ID == "" {
		return nil, errors.New("no post id returned from LinkedIn")
	}

	result := &models.PostResult{
		ID:       created.ID,
		URL:      linkedInShareURL + created.ID,
		Platform: models.PlatformLinkedIn,
		PostType: item.PostType,
	}

	if err := recordPost(ctx, s.logs, item, result, s.now()); err != nil {
		return result, err
	}
	return result, nil
}

// Recent returns up to n log entries, newest first, and the total count.
func (s *linkedInService) Recent(ctx context.Context, n int) ([]*models.PostingLogEntry, int, error) {
	log, err := s.logs.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	return log.Recent(n), log.Len(), nil
}
