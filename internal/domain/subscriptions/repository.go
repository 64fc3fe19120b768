package subscriptions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Subscription) error
	Update(ctx context.Context, s Subscription) error
	GetByID(ctx context.Context, id string) (Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)

	// ListDue: activas con NextRenewalDate <= at.
	ListDue(ctx context.Context, at time.Time) ([]Subscription, error)

	// AdvanceRenewal toca solo la fecha y solo si sigue activa.
	// ErrNotFound si no existe, ErrBadState si cambió de estado.
	AdvanceRenewal(ctx context.Context, id string, next, updatedAt time.Time) error
}
