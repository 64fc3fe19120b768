package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"catbox/internal/domain/subscriptions"
)

type subscriptionRepo struct {
	mu   sync.RWMutex
	byID map[string]subscriptions.Subscription
}

func NewSubscriptionRepo() subscriptions.Repository {
	return &subscriptionRepo{byID: make(map[string]subscriptions.Subscription)}
}

func (r *subscriptionRepo) Create(ctx context.Context, s subscriptions.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[s.ID]; exists {
		return errAlreadyExists
	}
	r.byID[s.ID] = s
	return nil
}

func (r *subscriptionRepo) Update(ctx context.Context, s subscriptions.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return subscriptions.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *subscriptionRepo) AdvanceRenewal(ctx context.Context, id string, next, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.byID[id]
	if !exists {
		return subscriptions.ErrNotFound
	}
	if s.Status != subscriptions.StatusActive {
		return subscriptions.ErrBadState
	}
	s.NextRenewalDate = next
	s.UpdatedAt = updatedAt
	r.byID[id] = s
	return nil
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id string) (subscriptions.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return subscriptions.Subscription{}, subscriptions.ErrNotFound
	}
	return s, nil
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID string) ([]subscriptions.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscriptions.Subscription, 0)
	for _, s := range r.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *subscriptionRepo) ListDue(ctx context.Context, at time.Time) ([]subscriptions.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscriptions.Subscription, 0)
	for _, s := range r.byID {
		if s.Status == subscriptions.StatusActive && !s.NextRenewalDate.After(at) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextRenewalDate.Before(out[j].NextRenewalDate) })
	return out, nil
}
