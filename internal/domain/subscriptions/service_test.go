package subscriptions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catbox/internal/domain/plans"
	"catbox/internal/platform/logger"
)

type testRepo struct {
	byID map[string]Subscription
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Subscription{}} }

func (r *testRepo) Create(ctx context.Context, s Subscription) error { r.byID[s.ID] = s; return nil }

func (r *testRepo) Update(ctx context.Context, s Subscription) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Subscription, error) {
	s, ok := r.byID[id]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	out := make([]Subscription, 0)
	for _, s := range r.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) ListDue(ctx context.Context, at time.Time) ([]Subscription, error) {
	out := make([]Subscription, 0)
	for _, s := range r.byID {
		if s.Status == StatusActive && !s.NextRenewalDate.After(at) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) AdvanceRenewal(ctx context.Context, id string, next, updatedAt time.Time) error {
	s, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if s.Status != StatusActive {
		return ErrBadState
	}
	s.NextRenewalDate = next
	s.UpdatedAt = updatedAt
	r.byID[id] = s
	return nil
}

type planTable map[string]plans.Plan

func (p planTable) GetByID(ctx context.Context, id string) (plans.Plan, error) {
	pl, ok := p[id]
	if !ok {
		return plans.Plan{}, plans.ErrNotFound
	}
	return pl, nil
}

type recordingPlacer struct {
	placed []string
	failOn map[string]bool
}

func (p *recordingPlacer) PlaceRenewal(ctx context.Context, sub Subscription) (string, error) {
	if p.failOn[sub.UserID] {
		return "", errors.New("no delivery profile")
	}
	p.placed = append(p.placed, sub.ID)
	return "order-" + sub.ID, nil
}

var (
	day0   = time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	weekly = plans.Plan{ID: plans.WeeklyPlanID, Name: "Weekly", DurationDays: 7, Active: true}
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService() (*Service, *clock) {
	c := &clock{t: day0}
	svc := NewService(newTestRepo(), planTable{weekly.ID: weekly}, logger.Nop())
	svc.now = c.now
	return svc, c
}

func TestStart_SetsNextRenewal(t *testing.T) {
	svc, _ := newTestService()
	sub, err := svc.Start(context.Background(), "u1", weekly)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, day0, sub.StartDate)
	assert.Equal(t, day0.AddDate(0, 0, 7), sub.NextRenewalDate)

	_, err = svc.Start(context.Background(), "", weekly)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLifecycle_PauseResumeCancel(t *testing.T) {
	svc, clk := newTestService()
	ctx := context.Background()

	sub, err := svc.Start(ctx, "u1", weekly)
	require.NoError(t, err)

	_, err = svc.Pause(ctx, sub.ID, "u2")
	assert.ErrorIs(t, err, ErrForbidden)

	sub, err = svc.Pause(ctx, sub.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, sub.Status)

	_, err = svc.Pause(ctx, sub.ID, "u1")
	assert.ErrorIs(t, err, ErrBadState)

	// Reanudar después de la fecha de renovación corre un período desde hoy.
	clk.t = day0.AddDate(0, 0, 20)
	sub, err = svc.Resume(ctx, sub.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, clk.t.AddDate(0, 0, 7), sub.NextRenewalDate)

	sub, err = svc.Cancel(ctx, sub.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, sub.Status)

	_, err = svc.Cancel(ctx, sub.ID, "u1")
	assert.ErrorIs(t, err, ErrBadState)
	_, err = svc.Resume(ctx, sub.ID, "u1")
	assert.ErrorIs(t, err, ErrBadState)
}

func TestRenewDue_PlacesOrdersAndAdvances(t *testing.T) {
	svc, clk := newTestService()
	ctx := context.Background()
	placer := &recordingPlacer{failOn: map[string]bool{"broken": true}}
	svc.SetOrderPlacer(placer)

	a, err := svc.Start(ctx, "u1", weekly)
	require.NoError(t, err)
	b, err := svc.Start(ctx, "broken", weekly)
	require.NoError(t, err)
	paused, err := svc.Start(ctx, "u3", weekly)
	require.NoError(t, err)
	_, err = svc.Pause(ctx, paused.ID, "u3")
	require.NoError(t, err)

	// 15 días: dos períodos vencidos, una sola orden.
	at := day0.AddDate(0, 0, 15)
	clk.t = at
	rep, err := svc.RenewDue(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, RenewalReport{Due: 2, Renewed: 1, Failed: 1}, rep)
	assert.Equal(t, []string{a.ID}, placer.placed)

	got, err := svc.repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, day0.AddDate(0, 0, 21), got.NextRenewalDate)

	// La fallida queda vencida para el próximo barrido.
	got, err = svc.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, day0.AddDate(0, 0, 7), got.NextRenewalDate)
}

func TestRenewDue_RequiresPlacer(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.RenewDue(context.Background(), day0)
	assert.ErrorIs(t, err, ErrNoPlacer)
}

// cancelingPlacer simula que el cliente cancela mientras se crea el pedido.
type cancelingPlacer struct {
	svc *Service
}

func (p *cancelingPlacer) PlaceRenewal(ctx context.Context, sub Subscription) (string, error) {
	if _, err := p.svc.Cancel(ctx, sub.ID, sub.UserID); err != nil {
		return "", err
	}
	return "order-" + sub.ID, nil
}

func TestRenewDue_DoesNotReviveCanceled(t *testing.T) {
	svc, clk := newTestService()
	ctx := context.Background()
	svc.SetOrderPlacer(&cancelingPlacer{svc: svc})

	sub, err := svc.Start(ctx, "u1", weekly)
	require.NoError(t, err)

	at := day0.AddDate(0, 0, 8)
	clk.t = at
	rep, err := svc.RenewDue(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, RenewalReport{Due: 1, Renewed: 0, Failed: 1}, rep)

	got, err := svc.repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)
	assert.Equal(t, day0.AddDate(0, 0, 7), got.NextRenewalDate)
}
