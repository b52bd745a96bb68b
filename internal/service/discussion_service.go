package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"

	config "github.com/maheshrc27/community-automation/configs"
	"github.com/maheshrc27/community-automation/internal/models"
	"github.com/maheshrc27/community-automation/internal/queue"
	"github.com/maheshrc27/community-automation/internal/repository"
	"github.com/maheshrc27/community-automation/internal/transfer"
)

const (
	categoriesQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    id
    discussionCategories(first: 25) { nodes { id name } }
  }
}`

	createDiscussionMutation = `mutation($repositoryId: ID!, $categoryId: ID!, $title: String!, $body: String!) {
  createDiscussion(input: {repositoryId: $repositoryId, categoryId: $categoryId, title: $title, body: $body}) {
    discussion { id title url }
  }
}`

	discussionsQuery = `query($owner: String!, $name: String!, $cursor: String) {
  repository(owner: $owner, name: $name) {
    discussions(first: 100, after: $cursor, orderBy: {field: CREATED_AT, direction: DESC}) {
      nodes {
        title url number body createdAt updatedAt
        category { name }
        comments { totalCount }
        author { login }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`
)

var (
	challengePrefix = regexp.MustCompile(`^(Challenge|🎯)`)
	wordStart       = regexp.MustCompile(`\b\w`)
)

type DiscussionService interface {
	LoadChallenges(ctx context.Context) ([]*models.Challenge, error)
	ChallengeCategory(ctx context.Context) (repositoryID string, category *models.DiscussionCategory, err error)
	CreateChallengeDiscussions(ctx context.Context) ([]*models.DiscussionResult, error)
	FetchDiscussions(ctx context.Context) ([]*models.Discussion, error)
}

type discussionService struct {
	cfg     config.GitHub
	client  *github.Client
	results repository.ResultsRepository
	runner  *queue.Runner
}

func NewDiscussionService(cfg config.GitHub, client *github.Client, results repository.ResultsRepository, runner *queue.Runner) DiscussionService {
	return &discussionService{
		cfg:     cfg,
		client:  client,
		results: results,
		runner:  runner,
	}
}

// LoadChallenges reads numbered markdown files from the local challenges
// directory, or from the wiki repository when it is not checked out.
func (s *discussionService) LoadChallenges(ctx context.Context) ([]*models.Challenge, error) {
	var (
		challenges []*models.Challenge
		err        error
	)
	if info, statErr := os.Stat(s.cfg.ChallengesDir); statErr == nil && info.IsDir() {
		challenges, err = localChallenges(s.cfg.ChallengesDir)
	} else {
		logrus.WithField("repo", s.cfg.WikiRepo).Info("challenges directory not found locally, reading wiki repository")
		challenges, err = s.remoteChallenges(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(challenges, func(i, j int) bool { return challenges[i].Path < challenges[j].Path })
	return challenges, nil
}

func localChallenges(dir string) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isChallengeFile(d.Name()) {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		challenges = append(challenges, &models.Challenge{Path: p, Name: d.Name(), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read challenges: %w", err)
	}
	return challenges, nil
}

func (s *discussionService) remoteChallenges(ctx context.Context) ([]*models.Challenge, error) {
	owner, repo, ok := config.SplitRepo(s.cfg.WikiRepo)
	if !ok {
		return nil, fmt.Errorf("invalid wiki repository %q", s.cfg.WikiRepo)
	}

	var challenges []*models.Challenge
	var walk func(dir string) error
	walk = func(dir string) error {
		_, entries, _, err := s.client.Repositories.GetContents(ctx, owner, repo, dir, nil)
		if err != nil {
			return fmt.Errorf("failed to list %s/%s: %w", s.cfg.WikiRepo, dir, err)
		}
		for _, e := range entries {
			switch e.GetType() {
			case "dir":
				if err := walk(e.GetPath()); err != nil {
					return err
				}
			case "file":
				if !isChallengeFile(e.GetName()) {
					continue
				}
				file, _, _, err := s.client.Repositories.GetContents(ctx, owner, repo, e.GetPath(), nil)
				if err != nil {
					return fmt.Errorf("failed to fetch %s: %w", e.GetPath(), err)
				}
				content, err := file.GetContent()
				if err != nil {
					return fmt.Errorf("failed to decode %s: %w", e.GetPath(), err)
				}
				challenges = append(challenges, &models.Challenge{Path: e.GetPath(), Name: e.GetName(), Content: content})
			}
		}
		return nil
	}

	if err := walk(path.Clean(filepath.ToSlash(s.cfg.ChallengesDir))); err != nil {
		return nil, err
	}
	return challenges, nil
}

func isChallengeFile(name string) bool {
	return filepath.Ext(name) == ".md" && len(name) > 0 && name[0] >= '0' && name[0] <= '9'
}

// ChallengeTitle derives a discussion title from the first level 1 heading
// or, failing that, from the file name.
func ChallengeTitle(content, filename string) string {
	title := ExtractTitle(content)
	if title == "" {
		base := strings.TrimSuffix(filepath.Base(filename), ".md")
		base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
		title = wordStart.ReplaceAllStringFunc(base, strings.ToUpper)
	}
	if !challengePrefix.MatchString(title) {
		title = "🎯 Challenge: " + title
	}
	return title
}

func ChallengeBody(content string) string {
	return `# 🎯 AI Builder Challenge

` + content + `

---

## 🤝 How to Participate

1. **💬 Comment below** with your approach or questions
2. **🔗 Share your progress** - link to your repo, demo, or writeup  
3. **🏷️ Tag others** who might be interested in collaborating
4. **⭐ Star this discussion** to follow updates

## 📚 Resources

- 📖 **Source Wiki**: [AI-Product-Development/wiki/challenges](https://github.com/AI-Product-Development/wiki/tree/main/challenges)
- 🏠 **Community Home**: [AI Builders](https://github.com/AI-Product-Development/aibuilders)
- 💡 **More Challenges**: Browse other discussions in this category

---
*This challenge was imported from our community wiki. Feel free to suggest improvements or variations!*`
}

// CategoryNotFoundError lists the categories that were available.
type CategoryNotFoundError struct {
	Available []*models.DiscussionCategory
}

func (e *CategoryNotFoundError) Error() string {
	names := make([]string, 0, len(e.Available))
	for _, c := range e.Available {
		names = append(names, fmt.Sprintf("%s - %s", c.ID, c.Name))
	}
	return "no challenge or collaboration discussion category found; available: " + strings.Join(names, ", ")
}

func FindChallengeCategory(categories []*models.DiscussionCategory) (*models.DiscussionCategory, error) {
	for _, c := range categories {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, "challenge") || strings.Contains(name, "collaboration") {
			return c, nil
		}
	}
	return nil, &CategoryNotFoundError{Available: categories}
}

func (s *discussionService) targetRepo() (string, string, error) {
	owner, name, ok := config.SplitRepo(s.cfg.DiscussionsRepo)
	if !ok {
		return "", "", fmt.Errorf("invalid discussions repository %q", s.cfg.DiscussionsRepo)
	}
	return owner, name, nil
}

func (s *discussionService) ChallengeCategory(ctx context.Context) (string, *models.DiscussionCategory, error) {
	owner, name, err := s.targetRepo()
	if err != nil {
		return "", nil, err
	}

	var data transfer.RepositoryCategories
	if err := graphql(ctx, s.client, categoriesQuery, map[string]any{"owner": owner, "name": name}, &data); err != nil {
		return "", nil, fmt.Errorf("failed to get discussion categories: %w", err)
	}

	categories := make([]*models.DiscussionCategory, 0, len(data.Repository.DiscussionCategories.Nodes))
	for _, n := range data.Repository.DiscussionCategories.Nodes {
		categories = append(categories, &models.DiscussionCategory{ID: n.ID, Name: n.Name})
	}

	category, err := FindChallengeCategory(categories)
	if err != nil {
		return "", nil, err
	}
	return data.Repository.ID, category, nil
}

func (s *discussionService) createDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error) {
	var data transfer.CreateDiscussionData
	vars := map[string]any{
		"repositoryId": repositoryID,
		"categoryId":   categoryID,
		"title":        title,
		"body":         body,
	}
	if err := graphql(ctx, s.client, createDiscussionMutation, vars, &data); err != nil {
		return "", fmt.Errorf("failed to create discussion: %w", err)
	}

	url := data.CreateDiscussion.Discussion.URL
	if url == "" {
		return "", errors.New("failed to create discussion: no url returned")
	}
	return url, nil
}

// CreateChallengeDiscussions creates one discussion per challenge file. A
// failed file is recorded and the run continues.
func (s *discussionService) CreateChallengeDiscussions(ctx context.Context) ([]*models.DiscussionResult, error) {
	repositoryID, category, err := s.ChallengeCategory(ctx)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"category": category.Name, "id": category.ID}).Info("found discussion category")

	challenges, err := s.LoadChallenges(ctx)
	if err != nil {
		return nil, err
	}
	if len(challenges) == 0 {
		return nil, errors.New("no markdown files found in challenges directory")
	}

	results := make([]*models.DiscussionResult, 0, len(challenges))
	err = s.runner.Run(ctx, len(challenges), func(ctx context.Context, i int) bool {
		c := challenges[i]
		title := ChallengeTitle(c.Content, c.Name)
		entry := logrus.WithFields(logrus.Fields{"file": c.Name, "title": title})

		url, err := s.createDiscussion(ctx, repositoryID, category.ID, title, ChallengeBody(c.Content))
		if err != nil {
			entry.WithError(err).Error("discussion not created")
			results = append(results, &models.DiscussionResult{File: c.Name, Title: "Failed to extract", Error: err.Error()})
			return true
		}

		entry.WithField("url", url).Info("discussion created")
		results = append(results, &models.DiscussionResult{File: c.Name, Title: title, URL: url, Success: true})
		return true
	})
	if err != nil {
		return results, err
	}

	if err := s.results.SaveDiscussionResults(ctx, results); err != nil {
		return results, fmt.Errorf("failed to save results: %w", err)
	}

	var urls []string
	for _, r := range results {
		if r.Success {
			urls = append(urls, r.URL)
		}
	}
	if len(urls) > 0 {
		if err := s.results.SaveDiscussionURLs(ctx, urls); err != nil {
			return results, fmt.Errorf("failed to save discussion urls: %w", err)
		}
	}

	return results, nil
}

func (s *discussionService) FetchDiscussions(ctx context.Context) ([]*models.Discussion, error) {
	owner, name, err := s.targetRepo()
	if err != nil {
		return nil, err
	}

	var (
		discussions []*models.Discussion
		cursor      *string
	)
	for {
		var page transfer.DiscussionsPage
		vars := map[string]any{"owner": owner, "name": name, "cursor": cursor}
		if err := graphql(ctx, s.client, discussionsQuery, vars, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch discussions: %w", err)
		}

		conn := page.Repository.Discussions
		for _, n := range conn.Nodes {
			d := &models.Discussion{
				Title:     n.Title,
				URL:       n.URL,
				Number:    n.Number,
				Category:  n.Category.Name,
				CreatedAt: n.CreatedAt,
				UpdatedAt: n.UpdatedAt,
				Comments:  n.Comments.TotalCount,
				Body:      n.Body,
			}
			if n.Author != nil {
				d.User = n.Author.Login
			}
			discussions = append(discussions, d)
		}

		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
			break
		}
		next := conn.PageInfo.EndCursor
		cursor = &next
	}

	if err := s.results.SaveDiscussions(ctx, discussions); err != nil {
		return discussions, fmt.Errorf("failed to save discussions: %w", err)
	}
	return discussions, nil
}

// DiscussionCategories returns the distinct categories in first-seen order.
func DiscussionCategories(discussions []*models.Discussion) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range discussions {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}
