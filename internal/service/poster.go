package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
)

// Poster publishes one content item to one platform.
type Poster interface {
	Platform() string
	Post(ctx context.Context, item *models.ContentItem) (*models.PostResult, error)
}

// recordPost stores the latest successful publish for item.ID. The whole log
// document is rewritten.
func recordPost(ctx context.Context, logs repository.PostingLogRepository, item *models.ContentItem, result *models.PostResult, postedAt time.Time) error {
	if err := writeLogEntry(ctx, logs, item, result, postedAt); err != nil {
		// the next scheduled run would publish the item again
		logrus.WithFields(logrus.Fields{
			"platform": result.Platform,
			"post_id":  item.ID,
			"id":       result.ID,
			"url":      result.URL,
		}).WithError(err).Error("posted but log not saved, add the entry to the posting log by hand")
		return err
	}
	return nil
}

func writeLogEntry(ctx context.Context, logs repository.PostingLogRepository, item *models.ContentItem, result *models.PostResult, postedAt time.Time) error {
	log, err := logs.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load posting log: %w", err)
	}

	log.Set(item.ID, &models.PostingLogEntry{
		PostID:     item.ID,
		LastPosted: postedAt,
		LastPostID: result.ID,
		PostType:   result.PostType,
		Platform:   result.Platform,
		Title:      item.Title,
		URL:        result.URL,
	})

	if err := logs.Save(ctx, log); err != nil {
		return fmt.Errorf("failed to save posting log: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"platform": result.Platform,
		"post_id":  item.ID,
		"id":       result.ID,
	}).Debug("posting log updated")
	return nil
}
