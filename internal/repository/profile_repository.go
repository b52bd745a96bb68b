package repository

import (
	"context"
	"sync"

	"github.com/maheshrc27/community-automation/internal/models"
)

type ProfileRepository interface {
	Load(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	path string
}

func NewProfileRepository(path string) ProfileRepository {
	return &profileRepository{path: path}
}

func (r *profileRepository) Load(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := readJSON(r.path, &profile); err != nil {
		return nil, &NotFoundError{Path: r.path, Err: err}
	}
	if profile.PersonURN == "" {
		return nil, &NotFoundError{Path: r.path + " person_urn"}
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return writeJSON(r.path, profile, 0o600)
}

type memoryProfileRepository struct {
	mu      sync.Mutex
	profile *models.Profile
}

func NewMemoryProfileRepository(profile *models.Profile) ProfileRepository {
	return &memoryProfileRepository{profile: profile}
}

func (r *memoryProfileRepository) Load(ctx context.Context) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profile == nil {
		return nil, &NotFoundError{Path: "memory"}
	}
	p := *r.profile
	return &p, nil
}

func (r *memoryProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *profile
	r.profile = &p
	return nil
}
