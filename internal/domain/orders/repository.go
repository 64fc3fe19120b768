package orders

import (
	"context"
	"time"
)

type Repository interface {
	// Create guarda pedido, ítems y el primer cambio de estado de forma atómica.
	Create(ctx context.Context, o Order, initial StatusChange) error
	GetByID(ctx context.Context, id string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// UpdateStatus aplica el cambio solo si el estado actual sigue siendo change.From.
	UpdateStatus(ctx context.Context, change StatusChange, updatedAt time.Time) error
	ListStatusChanges(ctx context.Context, orderID string) ([]StatusChange, error)
}
