package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/queue"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/transfer"
)

func newTestDiscussions(t *testing.T, cfg config.GitHub, handler http.Handler) (*discussionService, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.APIURL = srv.URL
	client, err := NewGitHubClient(cfg, srv.Client())
	require.NoError(t, err)

	out := t.TempDir()
	results := repository.NewResultsRepository(filepath.Join(out, "results.json"), filepath.Join(out, "urls.txt"))
	return NewDiscussionService(cfg, client, results, queue.NewRunner(0)).(*discussionService), out
}

func writeGraphQL(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":%s}`, data)
}

func TestChallengeTitle(t *testing.T) {
	require.Equal(t, "🎯 Challenge: 01 Build A Chatbot", ChallengeTitle("no heading here", "challenges/01-build-a_chatbot.md"))
	require.Equal(t, "🎯 Challenge: Prompt Golf", ChallengeTitle("# Prompt Golf\n\nbody", "02-x.md"))
	require.Equal(t, "Challenge 3: Agents", ChallengeTitle("# Challenge 3: Agents\n", "03-x.md"))
	require.Equal(t, "🎯 Ready", ChallengeTitle("# 🎯 Ready\n", "04-x.md"))
}

func TestFindChallengeCategory(t *testing.T) {
	cats := []*models.DiscussionCategory{{ID: "1", Name: "General"}, {ID: "2", Name: "Community Collaborations"}}
	c, err := FindChallengeCategory(cats)
	require.NoError(t, err)
	require.Equal(t, "2", c.ID)

	_, err = FindChallengeCategory(cats[:1])
	var notFound *CategoryNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Contains(t, err.Error(), "1 - General")
}

func TestLocalChallengesFilterAndOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for name, body := range map[string]string{
		"02-second.md":        "# Second",
		"01-first.md":         "# First",
		"README.md":           "skip",
		"03-notes.txt":        "skip",
		"nested/05-deeper.md": "# Deeper",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	svc, _ := newTestDiscussions(t, config.GitHub{ChallengesDir: dir}, http.NotFoundHandler())
	challenges, err := svc.LoadChallenges(context.Background())
	require.NoError(t, err)

	var names []string
	for _, c := range challenges {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"01-first.md", "02-second.md", "05-deeper.md"}, names)
}

func TestRemoteChallenges(t *testing.T) {
	file := func(path, content string) string {
		return fmt.Sprintf(`{"type":"file","name":%q,"path":%q,"encoding":"base64","content":%q}`,
			filepath.Base(path), path, base64.StdEncoding.EncodeToString([]byte(content)))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/wiki/contents/challenges", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"type":"file","name":"10-b.md","path":"challenges/10-b.md"},
			{"type":"file","name":"index.md","path":"challenges/index.md"},
			{"type":"dir","name":"more","path":"challenges/more"}
		]`)
	})
	mux.HandleFunc("/repos/org/wiki/contents/challenges/more", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"type":"file","name":"01-a.md","path":"challenges/more/01-a.md"}]`)
	})
	mux.HandleFunc("/repos/org/wiki/contents/challenges/10-b.md", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, file("challenges/10-b.md", "# B"))
	})
	mux.HandleFunc("/repos/org/wiki/contents/challenges/more/01-a.md", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, file("challenges/more/01-a.md", "# A"))
	})

	svc, _ := newTestDiscussions(t, config.GitHub{WikiRepo: "org/wiki", ChallengesDir: "challenges"}, mux)
	challenges, err := svc.LoadChallenges(context.Background())
	require.NoError(t, err)
	require.Len(t, challenges, 2)
	require.Equal(t, "challenges/10-b.md", challenges[0].Path)
	require.Equal(t, "# B", challenges[0].Content)
	require.Equal(t, "# A", challenges[1].Content)
}

func TestCreateChallengeDiscussions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-ok.md"), []byte("# Build It\n\nDo the thing."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-fail.md"), []byte("# Break It"), 0o644))

	var created []map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql", r.URL.Path)
		var req transfer.GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch {
		case strings.Contains(req.Query, "discussionCategories"):
			require.Equal(t, "org", req.Variables["owner"])
			writeGraphQL(w, `{"repository":{"id":"R_1","discussionCategories":{"nodes":[{"id":"C_0","name":"General"},{"id":"C_1","name":"Challenges"}]}}}`)
		case strings.Contains(req.Query, "createDiscussion"):
			created = append(created, req.Variables)
			if strings.Contains(req.Variables["title"].(string), "Break It") {
				fmt.Fprint(w, `{"errors":[{"message":"body is too long"}]}`)
				return
			}
			writeGraphQL(w, `{"createDiscussion":{"discussion":{"id":"D_1","title":"t","url":"https://github.com/org/community/discussions/1"}}}`)
		default:
			t.Errorf("unexpected query %q", req.Query)
		}
	})

	svc, out := newTestDiscussions(t, config.GitHub{ChallengesDir: dir, DiscussionsRepo: "org/community"}, handler)
	results, err := svc.CreateChallengeDiscussions(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.True(t, results[0].Success)
	require.Equal(t, "🎯 Challenge: Build It", results[0].Title)
	require.False(t, results[1].Success)
	require.Contains(t, results[1].Error, "body is too long")

	require.Len(t, created, 2)
	require.Equal(t, "R_1", created[0]["repositoryId"])
	require.Equal(t, "C_1", created[0]["categoryId"])
	require.Contains(t, created[0]["body"], "Do the thing.")
	require.Contains(t, created[0]["body"], "## 🤝 How to Participate")

	urls, err := os.ReadFile(filepath.Join(out, "urls.txt"))
	require.NoError(t, err)
	require.Equal(t, "https://github.com/org/community/discussions/1", string(urls))
}

func TestFetchDiscussionsPaginates(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req transfer.GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls++
		if req.Variables["cursor"] == nil {
			writeGraphQL(w, `{"repository":{"discussions":{"nodes":[
				{"title":"One","url":"u1","number":1,"category":{"name":"Challenges"},"comments":{"totalCount":2},"author":{"login":"ada"},"createdAt":"2026-03-01T10:00:00Z","updatedAt":"2026-03-01T10:00:00Z"}
			],"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}}`)
			return
		}
		require.Equal(t, "c1", req.Variables["cursor"])
		writeGraphQL(w, `{"repository":{"discussions":{"nodes":[
			{"title":"Two","url":"u2","number":2,"category":{"name":"General"},"comments":{"totalCount":0},"author":null,"createdAt":"2026-03-02T10:00:00Z","updatedAt":"2026-03-02T10:00:00Z"}
		],"pageInfo":{"hasNextPage":false,"endCursor":"c2"}}}}`)
	})

	svc, out := newTestDiscussions(t, config.GitHub{DiscussionsRepo: "org/community"}, handler)
	discussions, err := svc.FetchDiscussions(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Len(t, discussions, 2)
	require.Equal(t, "ada", discussions[0].User)
	require.Equal(t, 2, discussions[0].Comments)
	require.Equal(t, "", discussions[1].User)
	require.Equal(t, []string{"Challenges", "General"}, DiscussionCategories(discussions))

	_, err = os.Stat(filepath.Join(out, "results.json"))
	require.NoError(t, err)
}
