package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"

	config "github.com/maheshrc27/community-automation/configs"
)

type PagesResult struct {
	URL            string
	AlreadyEnabled bool
}

type PagesService interface {
	Enable(ctx context.Context) (*PagesResult, error)
	SettingsURL() string
}

type pagesService struct {
	cfg    config.GitHub
	client *github.Client
}

func NewPagesService(cfg config.GitHub, client *github.Client) PagesService {
	return &pagesService{cfg: cfg, client: client}
}

// Enable turns on Pages from the configured branch and path. A site that
// already exists counts as success.
func (s *pagesService) Enable(ctx context.Context) (*PagesResult, error) {
	owner, repo, ok := config.SplitRepo(s.cfg.PagesRepo)
	if !ok {
		return nil, fmt.Errorf("invalid pages repository %q", s.cfg.PagesRepo)
	}

	result := &PagesResult{URL: fmt.Sprintf("https://%s.github.io/%s/", owner, repo)}

	pages, _, err := s.client.Repositories.EnablePages(ctx, owner, repo, &github.Pages{
		Source: &github.PagesSource{
			Branch: github.Ptr(s.cfg.PagesBranch),
			Path:   github.Ptr(s.cfg.PagesPath),
		},
	})
	if err != nil {
		if pagesAlreadyEnabled(err) {
			result.AlreadyEnabled = true
			return result, nil
		}
		return nil, fmt.Errorf("error enabling GitHub Pages: %w", err)
	}

	if u := pages.GetHTMLURL(); u != "" {
		result.URL = u
	}
	return result, nil
}

func (s *pagesService) SettingsURL() string {
	return fmt.Sprintf("https://github.com/%s/settings/pages", s.cfg.PagesRepo)
}

func pagesAlreadyEnabled(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
