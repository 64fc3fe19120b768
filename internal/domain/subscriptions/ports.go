package subscriptions

import (
	"context"

	"catbox/internal/domain/plans"
)

// PlanSource resuelve la duración del plan al renovar o reanudar.
type PlanSource interface {
	GetByID(ctx context.Context, id string) (plans.Plan, error)
}

// OrderPlacer crea el pedido de renovación. Lo implementa orders.Service;
// el puerto evita el ciclo orders <-> subscriptions.
type OrderPlacer interface {
	PlaceRenewal(ctx context.Context, sub Subscription) (orderID string, err error)
}
