package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catbox/internal/domain/cats"
	"catbox/internal/domain/orders"
	"catbox/internal/domain/subscriptions"
)

func TestCatRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCatRepo()

	require.NoError(t, repo.Create(ctx, cats.Cat{ID: "c1", OwnerUserID: "u1", Allergies: []string{"fish"}}))
	assert.Error(t, repo.Create(ctx, cats.Cat{ID: "c1"}))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	got.Allergies[0] = "beef"

	again, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fish"}, again.Allergies)

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, cats.ErrNotFound)
}

func TestOrderRepo_UpdateStatusChecksCurrentState(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	o := orders.Order{ID: "o1", UserID: "u1", Status: orders.StatusPending, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, o, orders.StatusChange{ID: "h1", OrderID: "o1", To: orders.StatusPending}))

	confirm := orders.StatusChange{ID: "h2", OrderID: "o1", From: orders.StatusPending, To: orders.StatusConfirmed}
	require.NoError(t, repo.UpdateStatus(ctx, confirm, now))
	// Repetir el mismo cambio ya no aplica.
	assert.ErrorIs(t, repo.UpdateStatus(ctx, confirm, now), orders.ErrBadState)

	h, err := repo.ListStatusChanges(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, h, 2)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, orders.StatusChange{OrderID: "missing"}, now), orders.ErrNotFound)
}

func TestSubscriptionRepo_ListDue(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepo()
	at := time.Date(2025, 3, 8, 6, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, subscriptions.Subscription{ID: "due", Status: subscriptions.StatusActive, NextRenewalDate: at}))
	require.NoError(t, repo.Create(ctx, subscriptions.Subscription{ID: "later", Status: subscriptions.StatusActive, NextRenewalDate: at.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, subscriptions.Subscription{ID: "paused", Status: subscriptions.StatusPaused, NextRenewalDate: at.Add(-time.Hour)}))

	due, err := repo.ListDue(ctx, at)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "due", due[0].ID)
}

func TestSubscriptionRepo_AdvanceRenewal(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepo()
	at := time.Date(2025, 3, 8, 6, 0, 0, 0, time.UTC)
	next := at.AddDate(0, 0, 7)

	require.NoError(t, repo.Create(ctx, subscriptions.Subscription{ID: "active", Status: subscriptions.StatusActive, NextRenewalDate: at}))
	require.NoError(t, repo.Create(ctx, subscriptions.Subscription{ID: "canceled", Status: subscriptions.StatusCanceled, NextRenewalDate: at}))

	require.NoError(t, repo.AdvanceRenewal(ctx, "active", next, at))
	got, err := repo.GetByID(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, next, got.NextRenewalDate)

	assert.ErrorIs(t, repo.AdvanceRenewal(ctx, "canceled", next, at), subscriptions.ErrBadState)
	got, err = repo.GetByID(ctx, "canceled")
	require.NoError(t, err)
	assert.Equal(t, subscriptions.StatusCanceled, got.Status)
	assert.Equal(t, at, got.NextRenewalDate)

	assert.ErrorIs(t, repo.AdvanceRenewal(ctx, "missing", next, at), subscriptions.ErrNotFound)
}
