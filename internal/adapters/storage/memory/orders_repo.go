package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"catbox/internal/domain/orders"
)

type orderRepo struct {
	mu      sync.RWMutex
	byID    map[string]orders.Order
	history map[string][]orders.StatusChange
}

func NewOrderRepo() orders.Repository {
	return &orderRepo{
		byID:    make(map[string]orders.Order),
		history: make(map[string][]orders.StatusChange),
	}
}

func (r *orderRepo) Create(ctx context.Context, o orders.Order, initial orders.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[o.ID]; exists {
		return errAlreadyExists
	}
	r.byID[o.ID] = cloneOrder(o)
	r.history[o.ID] = []orders.StatusChange{initial}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, c orders.StatusChange, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[c.OrderID]
	if !ok {
		return orders.ErrNotFound
	}
	// Alguien lo cambió entre la lectura y la escritura.
	if o.Status != c.From {
		return orders.ErrBadState
	}
	o.Status = c.To
	o.UpdatedAt = updatedAt
	r.byID[o.ID] = o
	r.history[o.ID] = append(r.history[o.ID], c)
	return nil
}

func (r *orderRepo) ListStatusChanges(ctx context.Context, orderID string) ([]orders.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.history[orderID]), nil
}

func cloneOrder(o orders.Order) orders.Order {
	items := make([]orders.Item, len(o.Items))
	for i, it := range o.Items {
		it.MenuRotation = slices.Clone(it.MenuRotation)
		it.AddOns = slices.Clone(it.AddOns)
		items[i] = it
	}
	o.Items = items
	return o
}
