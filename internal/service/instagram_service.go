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

const instagramPostType = "feed"

type InstagramService interface {
	Poster
}

type instagramService struct {
	cfg      config.Instagram
	logs     repository.PostingLogRepository
	uploader MediaUploader
	client   *http.Client
	now      func() time.Time
}

func NewInstagramService(cfg config.Instagram, logs repository.PostingLogRepository, uploader MediaUploader) InstagramService {
	return &instagramService{
		cfg:      cfg,
		logs:     logs,
		uploader: uploader,
		client:   http.DefaultClient,
		now:      time.Now,
	}
}

func (s *instagramService) Platform() string {
	return models.PlatformInstagram
}

func (s *instagramService) Post(ctx context.Context, item *models.ContentItem) (*models.PostResult, error) {
	if s.cfg.AccessToken == "" || s.cfg.AccountID == "" {
		return nil, &AuthError{Reason: "Instagram credentials not found, set INSTAGRAM_ACCESS_TOKEN and INSTAGRAM_ACCOUNT_ID"}
	}

	imageURL, err := s.imageURL(ctx, item)
	if err != nil {
		return nil, err
	}

	containerID, err := s.createContainer(ctx, imageURL, item.Text)
	if err != nil {
		return nil, err
	}

	mediaID, err := s.publishContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}

	result := &models.PostResult{
		ID:       mediaID,
		Platform: models.PlatformInstagram,
		PostType: instagramPostType,
	}

	if err := recordPost(ctx, s.logs, item, result, s.now()); err != nil {
		return result, err
	}
	return result, nil
}

// imageURL picks the item's URL, then an uploaded local file, then the
// configured fallback image. Feed posts cannot be text only.
func (s *instagramService) imageURL(ctx context.Context, item *models.ContentItem) (string, error) {
	if item.ImageURL != "" {
		return item.ImageURL, nil
	}

	if item.ImagePath != "" {
		if s.uploader == nil {
			return "", fmt.Errorf("no uploader configured for %s", item.ImagePath)
		}
		return s.uploader.Upload(ctx, item.ImagePath)
	}

	if s.cfg.DefaultImageURL != "" {
		return s.cfg.DefaultImageURL, nil
	}

	return "", errors.New("instagram posts need an image: set image_url, image_path or INSTAGRAM_DEFAULT_IMAGE_URL")
}

func (s *instagramService) createContainer(ctx context.Context, imageURL, caption string) (string, error) {
	url := fmt.Sprintf("%s/%s/media", s.cfg.GraphURL, s.cfg.AccountID)
	return s.call(ctx, url, &transfer.InstagramMediaContainer{
		ImageURL:    imageURL,
		Caption:     caption,
		AccessToken: s.cfg.AccessToken,
	})
}

func (s *instagramService) publishContainer(ctx context.Context, containerID string) (string, error) {
	url := fmt.Sprintf("%s/%s/media_publish", s.cfg.GraphURL, s.cfg.AccountID)
	return s.call(ctx, url, &transfer.InstagramMediaPublish{
		CreationID:  containerID,
		AccessToken: s.cfg.AccessToken,
	})
}

// call posts payload as JSON and returns the id from the response.
func (s *instagramService) call(ctx context.Context, url string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	respBody, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return "", instagramError(resp.StatusCode, respBody)
	}

	var result transfer.InstagramIDResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if result.ID == "" {
		return "", errors.New("no media ID returned from Instagram")
	}
	return result.ID, nil
}

func instagramError(status int, body []byte) error {
	var apiErr transfer.InstagramErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Code == transfer.InstagramInvalidTokenCode {
		logrus.WithField("fbtrace_id", apiErr.Error.FbtraceID).Warn("instagram token rejected")
		return &AuthError{
			Reason: "reauthenticate required",
			Err:    &PublishError{Platform: "Instagram", StatusCode: status, Body: string(body)},
		}
	}
	return classifyPublishError("Instagram", status, body)
}
