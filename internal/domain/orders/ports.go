package orders

import (
	"context"

	"catbox/internal/domain/cats"
	"catbox/internal/domain/nutrition"
	"catbox/internal/domain/plans"
	"catbox/internal/domain/profiles"
	"catbox/internal/domain/subscriptions"
)

type ProfileSource interface {
	Lookup(ctx context.Context, userID string) (profiles.Profile, error)
}

type CatSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error)
	NutritionProfile(c cats.Cat) (nutrition.Profile, []string, []string)
}

type PlanSource interface {
	GetActive(ctx context.Context, id string) (plans.Plan, error)
	GetByID(ctx context.Context, id string) (plans.Plan, error)
}

type SubscriptionStarter interface {
	Start(ctx context.Context, userID string, plan plans.Plan) (subscriptions.Subscription, error)
	CancelByID(ctx context.Context, id string) error
}

// Notifier avisa al admin y al cliente; lo implementa notifications.Service.
type Notifier interface {
	OrderCreated(ctx context.Context, o Order) error
}
