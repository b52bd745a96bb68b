package repository

import (
	"context"
	"sync"

	"github.com/maheshrc27/community-automation/internal/models"
)

type TokenRepository interface {
	Load(ctx context.Context) (*models.TokenRecord, error)
	Save(ctx context.Context, token *models.TokenRecord) error
}

type tokenRepository struct {
	path string
}

func NewTokenRepository(path string) TokenRepository {
	return &tokenRepository{path: path}
}

func (r *tokenRepository) Load(ctx context.Context) (*models.TokenRecord, error) {
	var token models.TokenRecord
	if err := readJSON(r.path, &token); err != nil {
		return nil, &NotFoundError{Path: r.path, Err: err}
	}
	if token.AccessToken == "" {
		return nil, &NotFoundError{Path: r.path}
	}
	return &token, nil
}

func (r *tokenRepository) Save(ctx context.Context, token *models.TokenRecord) error {
	return writeJSON(r.path, token, 0o600)
}

type memoryTokenRepository struct {
	mu    sync.Mutex
	token *models.TokenRecord
}

// NewMemoryTokenRepository keeps the record in memory; used by tests and by
// the environment variable override.
func NewMemoryTokenRepository(token *models.TokenRecord) TokenRepository {
	return &memoryTokenRepository{token: token}
}

func (r *memoryTokenRepository) Load(ctx context.Context) (*models.TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token == nil {
		return nil, &NotFoundError{Path: "memory"}
	}
	t := *r.token
	return &t, nil
}

func (r *memoryTokenRepository) Save(ctx context.Context, token *models.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.token = &t
	return nil
}
