package subscriptions

import "time"

// Status de la suscripción.
// @Enum active, paused, canceled
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusCanceled Status = "canceled"
)

// Subscription se crea en cada checkout; el barrido de renovaciones genera
// un pedido nuevo cuando NextRenewalDate vence.
type Subscription struct {
	ID     string
	UserID string
	PlanID string
	Status Status

	StartDate       time.Time
	NextRenewalDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
