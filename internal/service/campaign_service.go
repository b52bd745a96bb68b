package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/queue"
	"github.com/maheshrc27/community-automation/internal/repository"
)

// CampaignService publishes every eligible content directory under the
// posts directory to one platform.
type CampaignService interface {
	Run(ctx context.Context) (*models.RunSummary, error)
}

type campaignService struct {
	postsDir string
	poster   Poster
	logs     repository.PostingLogRepository
	runner   *queue.Runner
	now      func() time.Time
}

func NewCampaignService(postsDir string, poster Poster, logs repository.PostingLogRepository, runner *queue.Runner) CampaignService {
	return &campaignService{
		postsDir: postsDir,
		poster:   poster,
		logs:     logs,
		runner:   runner,
		now:      time.Now,
	}
}

func (s *campaignService) Run(ctx context.Context) (*models.RunSummary, error) {
	entries, err := os.ReadDir(s.postsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &repository.NotFoundError{Path: s.postsDir, Err: err}
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(s.postsDir, e.Name()))
		}
	}

	platform := s.poster.Platform()
	logrus.WithFields(logrus.Fields{"platform": platform, "dirs": len(dirs)}).Info("starting campaign")

	summary := &models.RunSummary{Platform: platform}
	err = s.runner.Run(ctx, len(dirs), func(ctx context.Context, i int) bool {
		res, acted := s.processDir(ctx, dirs[i])
		summary.Items = append(summary.Items, res)
		if res.Status != models.ItemStatusSkipped {
			summary.Processed++
		}
		if res.Status == models.ItemStatusPosted {
			summary.Successful++
		}
		return acted
	})
	if err != nil {
		return summary, err
	}

	return summary, nil
}

// processDir handles one content directory. acted reports whether the
// platform API was called.
func (s *campaignService) processDir(ctx context.Context, dir string) (res *models.ItemResult, acted bool) {
	res = &models.ItemResult{Dir: dir}
	platform := s.poster.Platform()
	entry := logrus.WithFields(logrus.Fields{"platform": platform, "dir": dir})

	cfg, err := loadPostConfig(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return skip(res, "no config.json found"), false
		}
		entry.WithError(err).Warn("invalid config.json")
		return fail(res, err), false
	}

	res.PostID = cfg.PostID
	if res.PostID == "" {
		res.PostID = filepath.Base(dir)
	}

	if !cfg.HasPlatform(platform) {
		return skip(res, fmt.Sprintf("%s not enabled", platform)), false
	}
	if !cfg.Active {
		return skip(res, "not active"), false
	}

	log, err := s.logs.Load(ctx)
	if err != nil {
		return fail(res, err), false
	}
	if !ShouldPostToday(cfg.Schedule, log.LastPosted(res.PostID), s.now()) {
		return skip(res, "not scheduled to post today"), false
	}

	doc, file, err := LoadPostContent(dir, platform)
	if err != nil {
		return fail(res, fmt.Errorf("no content file found: %w", err)), false
	}
	text := FormatPost(doc)
	if strings.TrimSpace(text) == "" {
		return fail(res, fmt.Errorf("%s has no postable content", file)), false
	}

	item := &models.ContentItem{
		ID:       res.PostID,
		Title:    cfg.Title,
		Text:     text,
		PostType: "scheduled",
		ImageURL: cfg.ImageURL,
	}
	if cfg.ImagePath != "" {
		item.ImagePath = filepath.Join(dir, cfg.ImagePath)
	}

	entry.WithField("title", cfg.Title).Info("publishing")
	result, err := s.poster.Post(ctx, item)
	if err != nil {
		entry.WithError(err).Error("publish failed")
		return fail(res, err), true
	}

	res.Status = models.ItemStatusPosted
	res.Result = result
	return res, true
}

func loadPostConfig(dir string) (*models.PostConfig, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg models.PostConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &repository.ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

func skip(res *models.ItemResult, reason string) *models.ItemResult {
	res.Status = models.ItemStatusSkipped
	res.Reason = reason
	return res
}

func fail(res *models.ItemResult, err error) *models.ItemResult {
	res.Status = models.ItemStatusFailed
	res.Reason = err.Error()
	return res
}
