package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/repository"
)

func newTestOAuth(t *testing.T, handler http.HandlerFunc) (*oauthService, repository.TokenRepository, repository.ProfileRepository) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := repository.NewMemoryTokenRepository(nil)
	profiles := repository.NewMemoryProfileRepository(nil)
	cfg := config.LinkedIn{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{"openid", "profile", "w_member_social"},
		OAuthURL:     srv.URL + "/oauth/v2",
		APIURL:       srv.URL,
	}
	svc := NewOAuthService(cfg, tokens, profiles).(*oauthService)
	svc.client = srv.Client()
	svc.now = func() time.Time { return monday }
	return svc, tokens, profiles
}

func TestAuthURL(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {})

	raw := svc.AuthURL("http://localhost:3000/callback", "state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/oauth/v2/authorization", u.Path)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "http://localhost:3000/callback", q.Get("redirect_uri"))
	require.Equal(t, "openid profile w_member_social", q.Get("scope"))
	require.Equal(t, "state-123", q.Get("state"))
}

func TestExchangeSuccess(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/v2/accessToken", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "client-id", r.PostForm.Get("client_id"))
		require.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		require.Equal(t, "http://localhost:3000/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"AQX","expires_in":5184000,"scope":"openid,profile"}`)
	})

	token, err := svc.Exchange(context.Background(), "the-code", "http://localhost:3000/callback")
	require.NoError(t, err)
	require.Equal(t, "AQX", token.AccessToken)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, models.Scopes{"openid", "profile"}, token.Scope)
	require.True(t, token.ExpiresAt.Equal(monday.Add(5184000*time.Second)))
	require.True(t, token.CreatedAt.Equal(monday))
}

func TestExchangeProviderError(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_request","error_description":"Unable to retrieve access token"}`)
	})

	_, err := svc.Exchange(context.Background(), "bad", "http://localhost:3000/callback")
	var exErr *ExchangeError
	require.ErrorAs(t, err, &exErr)
	require.Equal(t, http.StatusBadRequest, exErr.StatusCode)
	require.Contains(t, exErr.Body, "invalid_request")
}

func TestExchangeMissingAccessToken(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"expires_in":3600}`)
	})

	_, err := svc.Exchange(context.Background(), "code", "http://localhost:3000/callback")
	var exErr *ExchangeError
	require.ErrorAs(t, err, &exErr)
	require.Equal(t, `{"expires_in":3600}`, exErr.Body)
}

func TestExchangeErrorMessage(t *testing.T) {
	redirect := &ExchangeError{StatusCode: http.StatusFound, Body: "moved"}
	require.Equal(t, "token exchange failed with status 302: moved", redirect.Error())

	missing := &ExchangeError{StatusCode: http.StatusOK, Body: "{}"}
	require.Equal(t, "no access token in response: {}", missing.Error())
}

func TestAuthorizePersistsTokenAndProfile(t *testing.T) {
	svc, tokens, profiles := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v2/accessToken":
			fmt.Fprint(w, `{"access_token":"AQX","expires_in":60,"token_type":"Bearer","scope":"openid profile"}`)
		case "/v2/me":
			require.Equal(t, "Bearer AQX", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"id":"abc123","localizedFirstName":"Ada","localizedLastName":"Lovelace"}`)
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	token, profile, err := svc.Authorize(ctx, "code", "http://localhost:3000/callback")
	require.NoError(t, err)
	require.Equal(t, "urn:li:person:abc123", profile.PersonURN)
	require.Equal(t, "Ada", profile.FirstName)

	stored, err := tokens.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, token.AccessToken, stored.AccessToken)

	storedProfile, err := profiles.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc123", storedProfile.PersonID)
}

func TestFetchProfileOpenIDShape(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"xyz","given_name":"Grace"}`)
	})

	profile, err := svc.FetchProfile(context.Background(), "AQX")
	require.NoError(t, err)
	require.Equal(t, "urn:li:person:xyz", profile.PersonURN)
	require.Equal(t, "Grace", profile.FirstName)
	require.Equal(t, "N/A", profile.LastName)
}

func TestTestToken(t *testing.T) {
	svc, _, _ := newTestOAuth(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid access token"}`)
			return
		}
		fmt.Fprint(w, `{"id":"abc"}`)
	})

	require.True(t, svc.TestToken(context.Background(), "good"))
	require.False(t, svc.TestToken(context.Background(), "bad"))
}
