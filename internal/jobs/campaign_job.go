package job

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/service"
)

// CampaignJob runs the per-platform campaigns one after another.
type CampaignJob struct {
	campaigns []service.CampaignService

	// a cron tick that fires while a run is still going is dropped
	mu sync.Mutex
}

func NewCampaignJob(campaigns ...service.CampaignService) *CampaignJob {
	return &CampaignJob{campaigns: campaigns}
}

// Run returns one summary per campaign that could start. A campaign that
// fails to start is logged and the next one still runs.
func (j *CampaignJob) Run(ctx context.Context) ([]*models.RunSummary, error) {
	if !j.mu.TryLock() {
		logrus.Warn("campaign run already in progress, skipping")
		return nil, nil
	}
	defer j.mu.Unlock()

	var (
		summaries []*models.RunSummary
		firstErr  error
	)
	for _, c := range j.campaigns {
		summary, err := c.Run(ctx)
		if summary != nil {
			summaries = append(summaries, summary)
			logrus.WithFields(logrus.Fields{
				"platform":   summary.Platform,
				"processed":  summary.Processed,
				"successful": summary.Successful,
			}).Info("campaign finished")
		}
		if err != nil {
			logrus.WithError(err).Error("campaign failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return summaries, firstErr
}

func (j *CampaignJob) RunScheduled() {
	_, _ = j.Run(context.Background())
}
