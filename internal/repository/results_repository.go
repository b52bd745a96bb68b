package repository

import (
	"context"
	"os"
	"strings"

	"github.com/maheshrc27/community-automation/internal/models"
)

// ResultsRepository writes the artifacts of one bulk discussions run.
type ResultsRepository interface {
	SaveDiscussionResults(ctx context.Context, results []*models.DiscussionResult) error
	SaveDiscussionURLs(ctx context.Context, urls []string) error
	SaveDiscussions(ctx context.Context, discussions []*models.Discussion) error
}

type resultsRepository struct {
	resultsPath string
	urlsPath    string
}

func NewResultsRepository(resultsPath, urlsPath string) ResultsRepository {
	return &resultsRepository{resultsPath: resultsPath, urlsPath: urlsPath}
}

func (r *resultsRepository) SaveDiscussionResults(ctx context.Context, results []*models.DiscussionResult) error {
	if results == nil {
		results = []*models.DiscussionResult{}
	}
	return writeJSON(r.resultsPath, results, 0o644)
}

func (r *resultsRepository) SaveDiscussionURLs(ctx context.Context, urls []string) error {
	return os.WriteFile(r.urlsPath, []byte(strings.Join(urls, "\n")), 0o644)
}

func (r *resultsRepository) SaveDiscussions(ctx context.Context, discussions []*models.Discussion) error {
	if discussions == nil {
		discussions = []*models.Discussion{}
	}
	return writeJSON(r.resultsPath, discussions, 0o644)
}
