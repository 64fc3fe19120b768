package memory

import (
	"context"
	"strings"
	"sync"

	"catbox/internal/domain/notifications"
)

type notificationRepo struct {
	mu      sync.RWMutex
	byOrder map[string][]notifications.Notification
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{byOrder: make(map[string][]notifications.Notification)}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errIDRequired
	}
	r.byOrder[n.OrderID] = append(r.byOrder[n.OrderID], n)
	return nil
}

// ListByOrder en orden de creación.
func (r *notificationRepo) ListByOrder(ctx context.Context, orderID string) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, len(r.byOrder[orderID]))
	copy(out, r.byOrder[orderID])
	return out, nil
}
