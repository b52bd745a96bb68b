package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
)

type stubCampaign struct {
	summary *models.RunSummary
	err     error
	runs    int
}

func (c *stubCampaign) Run(ctx context.Context) (*models.RunSummary, error) {
	c.runs++
	return c.summary, c.err
}

func TestCampaignJobRunsAllCampaigns(t *testing.T) {
	linkedin := &stubCampaign{err: errors.New("posts directory missing")}
	instagram := &stubCampaign{summary: &models.RunSummary{Platform: "instagram", Processed: 2, Successful: 2}}

	summaries, err := NewCampaignJob(linkedin, instagram).Run(context.Background())
	require.EqualError(t, err, "posts directory missing")
	require.Equal(t, 1, linkedin.runs)
	require.Equal(t, 1, instagram.runs)
	require.Len(t, summaries, 1)
	require.Equal(t, "instagram", summaries[0].Platform)
}

func TestTokenExpiryJob(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name  string
		token *models.TokenRecord
		want  TokenState
	}{
		{name: "missing", want: TokenMissing},
		{name: "expired", token: &models.TokenRecord{AccessToken: "a", ExpiresAt: now}, want: TokenExpired},
		{name: "soon", token: &models.TokenRecord{AccessToken: "a", ExpiresAt: now.AddDate(0, 0, 3)}, want: TokenExpiresSoon},
		{name: "valid", token: &models.TokenRecord{AccessToken: "a", ExpiresAt: now.AddDate(0, 0, 30)}, want: TokenValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewTokenExpiryJob(repository.NewMemoryTokenRepository(tt.token), 7*24*time.Hour)
			job.now = func() time.Time { return now }

			state, err := job.Check(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.want, state)
		})
	}
}
