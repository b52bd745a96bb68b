package job

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maheshrc27/community-automation/internal/repository"
)

type TokenState string

const (
	TokenMissing     TokenState = "missing"
	TokenExpired     TokenState = "expired"
	TokenExpiresSoon TokenState = "expires_soon"
	TokenValid       TokenState = "valid"
)

// TokenExpiryJob warns ahead of LinkedIn token expiry. Tokens cannot be
// refreshed unattended, so a person has to rerun the OAuth setup.
type TokenExpiryJob struct {
	tokens  repository.TokenRepository
	warning time.Duration
	now     func() time.Time
}

func NewTokenExpiryJob(tokens repository.TokenRepository, warning time.Duration) *TokenExpiryJob {
	return &TokenExpiryJob{tokens: tokens, warning: warning, now: time.Now}
}

func (j *TokenExpiryJob) Check(ctx context.Context) (TokenState, error) {
	token, err := j.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.Warn("no LinkedIn token found, run linkedin-oauth")
			return TokenMissing, nil
		}
		return "", err
	}

	now := j.now()
	entry := logrus.WithFields(logrus.Fields{
		"expires_at": token.ExpiresAt,
		"days_left":  token.DaysLeft(now),
	})

	switch {
	case !token.IsUsable(now):
		entry.Error("LinkedIn token has expired, run linkedin-oauth")
		return TokenExpired, nil
	case token.ExpiresAt.Sub(now) <= j.warning:
		entry.Warn("LinkedIn token expires soon, run linkedin-oauth")
		return TokenExpiresSoon, nil
	}

	entry.Debug("LinkedIn token valid")
	return TokenValid, nil
}

func (j *TokenExpiryJob) CheckTokens() {
	if _, err := j.Check(context.Background()); err != nil {
		logrus.WithError(err).Error("token expiry check failed")
	}
}
