package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/transfer"
)

// NewGitHubClient builds an authenticated client. GITHUB_API_URL, when
// set, replaces the public API base.
func NewGitHubClient(cfg config.GitHub, httpClient *http.Client) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	if cfg.APIURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL: %w", err)
		}
		client.BaseURL = base
	}
	return client, nil
}

type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// graphqlURL resolves the GraphQL endpoint against the REST base. GitHub
// Enterprise serves REST under /api/v3/ and GraphQL under /api/graphql.
func graphqlURL(base *url.URL) string {
	if strings.HasSuffix(base.Path, "/api/v3/") {
		u := *base
		u.Path = strings.TrimSuffix(base.Path, "v3/") + "graphql"
		return u.String()
	}
	return "graphql"
}

// graphql runs one query against the GraphQL endpoint and decodes its data
// into out.
func graphql(ctx context.Context, client *github.Client, query string, vars map[string]any, out any) error {
	req, err := client.NewRequest(http.MethodPost, graphqlURL(client.BaseURL), &transfer.GraphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	var resp transfer.GraphQLResponse
	if _, err := client.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}

	if len(resp.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range resp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("error parsing graphql data: %w", err)
	}
	return nil
}
