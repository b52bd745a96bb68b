package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	config "github.com/maheshrc27/community-automation/configs"
)

func TestGraphQLURL(t *testing.T) {
	tests := []struct {
		name   string
		apiURL string
		want   string
	}{
		{name: "github.com", apiURL: "", want: "https://api.github.com/graphql"},
		{name: "enterprise", apiURL: "https://ghe.example.com/api/v3", want: "https://ghe.example.com/api/graphql"},
		{name: "custom root", apiURL: "http://127.0.0.1:8080/", want: "http://127.0.0.1:8080/graphql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewGitHubClient(config.GitHub{APIURL: tt.apiURL}, nil)
			require.NoError(t, err)

			resolved, err := client.BaseURL.Parse(graphqlURL(client.BaseURL))
			require.NoError(t, err)
			require.Equal(t, tt.want, resolved.String())
		})
	}
}
