package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/community-automation/internal/models"
)

func TestTokenRepositoryLoadMissingFile(t *testing.T) {
	repo := NewTokenRepository(filepath.Join(t.TempDir(), "linkedin-tokens.json"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTokenRepositoryLoadUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkedin-tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewTokenRepository(path).Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestTokenRepositorySaveLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "linkedin-tokens.json")
	repo := NewTokenRepository(path)

	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	token := &models.TokenRecord{
		AccessToken: "AQX-token",
		ExpiresIn:   5184000,
		ExpiresAt:   created.Add(5184000 * time.Second),
		TokenType:   "Bearer",
		Scope:       models.Scopes{"openid", "profile", "w_member_social"},
		CreatedAt:   created,
	}
	require.NoError(t, repo.Save(ctx, token))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, token.AccessToken, loaded.AccessToken)
	require.True(t, token.ExpiresAt.Equal(loaded.ExpiresAt))
	require.Equal(t, token.Scope, loaded.Scope)

	require.NoError(t, repo.Save(ctx, loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestTokenRepositoryAcceptsCommaSeparatedScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkedin-tokens.json")
	doc := `{"access_token":"abc","expires_at":"2026-05-01T00:00:00Z","scope":"email,openid,profile"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	token, err := NewTokenRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.Scopes{"email", "openid", "profile"}, token.Scope)
}

func TestMemoryTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTokenRepository(nil)

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, &models.TokenRecord{AccessToken: "abc"}))
	token, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", token.AccessToken)
}

func TestProfileRepositoryRequiresPersonURN(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "linkedin-profile.json")
	repo := NewProfileRepository(path)

	require.NoError(t, os.WriteFile(path, []byte(`{"person_id":"42"}`), 0o600))
	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, &models.Profile{PersonURN: models.PersonURN("42"), PersonID: "42"}))
	profile, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "urn:li:person:42", profile.PersonURN)
}
