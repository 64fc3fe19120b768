package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"catbox/internal/domain/cats"
)

type catRepo struct {
	mu   sync.RWMutex
	byID map[string]cats.Cat
}

func NewCatRepo() cats.Repository {
	return &catRepo{byID: make(map[string]cats.Cat)}
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[c.ID]; exists {
		return errAlreadyExists
	}
	r.byID[c.ID] = cloneCat(c)
	return nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return cats.ErrNotFound
	}
	r.byID[c.ID] = cloneCat(c)
	return nil
}

func (r *catRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return cats.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *catRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return cloneCat(c), nil
}

func (r *catRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, cloneCat(c))
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// cloneCat evita que el llamador modifique los slices guardados.
func cloneCat(c cats.Cat) cats.Cat {
	c.Allergies = slices.Clone(c.Allergies)
	c.HealthIssues = slices.Clone(c.HealthIssues)
	c.DislikedIngredients = slices.Clone(c.DislikedIngredients)
	return c
}
