package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"catbox/internal/domain/plans"
	"catbox/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("subscription not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("invalid subscription state")
	ErrNoPlacer     = errors.New("no order placer configured")
)

type Service struct {
	repo   Repository
	plans  PlanSource
	placer OrderPlacer
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, plans PlanSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		plans: plans,
		log:   log.With(map[string]any{"component": "subscriptions"}),
		now:   time.Now,
	}
}

// SetOrderPlacer se llama al cablear, una vez creado orders.Service.
func (s *Service) SetOrderPlacer(p OrderPlacer) { s.placer = p }

// Start abre una suscripción activa; la primera renovación es start + duración del plan.
func (s *Service) Start(ctx context.Context, userID string, plan plans.Plan) (Subscription, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(plan.ID) == "" || plan.DurationDays <= 0 {
		return Subscription{}, ErrInvalidInput
	}

	now := s.now()
	sub := Subscription{
		ID:              uuid.NewString(),
		UserID:          userID,
		PlanID:          plan.ID,
		Status:          StatusActive,
		StartDate:       now,
		NextRenewalDate: now.AddDate(0, 0, plan.DurationDays),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) getOwned(ctx context.Context, id, userID string) (Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if sub.UserID != userID {
		return Subscription{}, ErrForbidden
	}
	return sub, nil
}

func (s *Service) Pause(ctx context.Context, id, userID string) (Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Status != StatusActive {
		return Subscription{}, fmt.Errorf("%w: cannot pause %s", ErrBadState, sub.Status)
	}
	return s.save(ctx, sub, StatusPaused)
}

// Resume reactiva; si la fecha de renovación ya pasó se corre un período desde hoy.
func (s *Service) Resume(ctx context.Context, id, userID string) (Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Status != StatusPaused {
		return Subscription{}, fmt.Errorf("%w: cannot resume %s", ErrBadState, sub.Status)
	}

	now := s.now()
	if sub.NextRenewalDate.Before(now) {
		plan, err := s.plans.GetByID(ctx, sub.PlanID)
		if err != nil {
			return Subscription{}, err
		}
		sub.NextRenewalDate = now.AddDate(0, 0, plan.DurationDays)
	}
	return s.save(ctx, sub, StatusActive)
}

func (s *Service) Cancel(ctx context.Context, id, userID string) (Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Status == StatusCanceled {
		return Subscription{}, fmt.Errorf("%w: already canceled", ErrBadState)
	}
	return s.save(ctx, sub, StatusCanceled)
}

// CancelByID es la compensación interna de checkout (sin chequeo de dueño).
func (s *Service) CancelByID(ctx context.Context, id string) error {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status == StatusCanceled {
		return nil
	}
	_, err = s.save(ctx, sub, StatusCanceled)
	return err
}

func (s *Service) save(ctx context.Context, sub Subscription, status Status) (Subscription, error) {
	sub.Status = status
	sub.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

type RenewalReport struct {
	Due     int
	Renewed int
	Failed  int
}

// RenewDue genera un pedido por cada suscripción activa vencida y corre la fecha
// de renovación hasta después de at (una sola orden aunque haya períodos atrasados).
// Un fallo en una suscripción no corta el barrido.
func (s *Service) RenewDue(ctx context.Context, at time.Time) (RenewalReport, error) {
	if s.placer == nil {
		return RenewalReport{}, ErrNoPlacer
	}

	due, err := s.repo.ListDue(ctx, at)
	if err != nil {
		return RenewalReport{}, err
	}

	rep := RenewalReport{Due: len(due)}
	for _, sub := range due {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if err := s.renew(ctx, sub, at); err != nil {
			rep.Failed++
			s.log.Warn("renewal failed", map[string]any{"subscription_id": sub.ID, "user_id": sub.UserID, "err": err})
			continue
		}
		rep.Renewed++
	}
	return rep, nil
}

func (s *Service) renew(ctx context.Context, sub Subscription, at time.Time) error {
	plan, err := s.plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	if plan.DurationDays <= 0 {
		return fmt.Errorf("%w: plan %s has no duration", ErrInvalidInput, plan.ID)
	}

	orderID, err := s.placer.PlaceRenewal(ctx, sub)
	if err != nil {
		return fmt.Errorf("place renewal order: %w", err)
	}

	next := sub.NextRenewalDate
	for !next.After(at) {
		next = next.AddDate(0, 0, plan.DurationDays)
	}
	if err := s.repo.AdvanceRenewal(ctx, sub.ID, next, s.now()); err != nil {
		return fmt.Errorf("advance renewal date (order %s): %w", orderID, err)
	}

	s.log.Info("subscription renewed", map[string]any{
		"subscription_id": sub.ID,
		"order_id":        orderID,
		"next_renewal":    next.Format(time.DateOnly),
	})
	return nil
}
