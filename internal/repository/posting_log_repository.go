package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/maheshrc27/community-automation/internal/models"
)

// PostingLogRepository stores one platform's posting log as a single
// document. Load followed by Save is not safe across processes; the last
// writer wins.
type PostingLogRepository interface {
	Load(ctx context.Context) (*models.PostingLog, error)
	Save(ctx context.Context, log *models.PostingLog) error
}

type postingLogRepository struct {
	path string
}

func NewPostingLogRepository(path string) PostingLogRepository {
	return &postingLogRepository{path: path}
}

// Load returns an empty log when the file does not exist yet. A corrupt file
// is reported as a ParseError instead of being replaced.
func (r *postingLogRepository) Load(ctx context.Context) (*models.PostingLog, error) {
	log := models.NewPostingLog()
	if err := readJSON(r.path, log); err != nil {
		if isNotExist(err) {
			return models.NewPostingLog(), nil
		}
		return nil, err
	}
	return log, nil
}

func (r *postingLogRepository) Save(ctx context.Context, log *models.PostingLog) error {
	return writeJSON(r.path, log, 0o644)
}

type MemoryPostingLogRepository struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryPostingLogRepository() *MemoryPostingLogRepository {
	return &MemoryPostingLogRepository{}
}

func (r *MemoryPostingLogRepository) Load(ctx context.Context) (*models.PostingLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := models.NewPostingLog()
	if r.data == nil {
		return log, nil
	}
	if err := json.Unmarshal(r.data, log); err != nil {
		return nil, &ParseError{Path: "memory", Err: err}
	}
	return log, nil
}

func (r *MemoryPostingLogRepository) Save(ctx context.Context, log *models.PostingLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	r.saves++
	return nil
}

// Saves counts successful writes.
func (r *MemoryPostingLogRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
