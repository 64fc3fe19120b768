package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"catbox/internal/domain/plans"
)

type planRepo struct {
	mu   sync.RWMutex
	byID map[string]plans.Plan
}

// NewPlanRepo arranca con seed (normalmente plans.Seed).
func NewPlanRepo(seed ...plans.Plan) plans.Repository {
	r := &planRepo{byID: make(map[string]plans.Plan, len(seed))}
	for _, p := range seed {
		r.byID[p.ID] = p
	}
	return r
}

func (r *planRepo) Create(ctx context.Context, p plans.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[p.ID]; exists {
		return errAlreadyExists
	}
	r.byID[p.ID] = p
	return nil
}

func (r *planRepo) Update(ctx context.Context, p plans.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return plans.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *planRepo) GetByID(ctx context.Context, id string) (plans.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return plans.Plan{}, plans.ErrNotFound
	}
	return p, nil
}

func (r *planRepo) List(ctx context.Context) ([]plans.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]plans.Plan, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}
