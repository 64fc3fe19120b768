package memory

import (
	"context"
	"strings"
	"sync"

	"catbox/internal/domain/profiles"
)

type profileRepo struct {
	mu     sync.RWMutex
	byUser map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{byUser: make(map[string]profiles.Profile)}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errIDRequired
	}
	if prev, ok := r.byUser[p.UserID]; ok {
		p.CreatedAt = prev.CreatedAt
	}
	r.byUser[p.UserID] = p
	return nil
}
