package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"catbox/internal/domain/cats"
	"catbox/internal/domain/nutrition"
	"catbox/internal/domain/plans"
	"catbox/internal/domain/profiles"
	"catbox/internal/domain/subscriptions"
	"catbox/internal/platform/logger"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("forbidden")
	ErrBadState          = errors.New("invalid status transition")
	ErrIncompleteProfile = errors.New("delivery profile incomplete")
	ErrCityNotServed     = errors.New("city not served")
	ErrPlanUnavailable   = errors.New("plan unavailable")
	ErrNoCats            = errors.New("no cats to order for")
)

const maxNotesLen = 500

type Deps struct {
	Repo          Repository
	Profiles      ProfileSource
	Cats          CatSource
	Plans         PlanSource
	Subscriptions SubscriptionStarter
	Notifier      Notifier // opcional
	Engine        *nutrition.Engine
	CitiesServed  []string
	Log           logger.Logger
}

type Service struct {
	repo     Repository
	profiles ProfileSource
	cats     CatSource
	plans    PlanSource
	subs     SubscriptionStarter
	notifier Notifier
	engine   *nutrition.Engine
	cities   map[string]struct{}
	log      logger.Logger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	if d.Engine == nil {
		d.Engine = nutrition.Default()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	cities := make(map[string]struct{}, len(d.CitiesServed))
	for _, c := range d.CitiesServed {
		if c = normalizeCity(c); c != "" {
			cities[c] = struct{}{}
		}
	}
	return &Service{
		repo:     d.Repo,
		profiles: d.Profiles,
		cats:     d.Cats,
		plans:    d.Plans,
		subs:     d.Subscriptions,
		notifier: d.Notifier,
		engine:   d.Engine,
		cities:   cities,
		log:      d.Log.With(map[string]any{"component": "orders"}),
		now:      time.Now,
	}
}

type CheckoutInput struct {
	PlanID string
	CatIDs []string // vacío = todos los gatos del usuario
	Notes  string
}

// Checkout crea el pedido con un plan nutricional por gato (menú de la duración del plan),
// abre la suscripción y dispara las notificaciones. Las notificaciones son best effort.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (Order, error) {
	in.PlanID = strings.TrimSpace(in.PlanID)
	in.Notes = strings.TrimSpace(in.Notes)
	if strings.TrimSpace(userID) == "" || in.PlanID == "" {
		return Order{}, ErrInvalidInput
	}
	if len(in.Notes) > maxNotesLen {
		return Order{}, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	plan, err := s.plans.GetActive(ctx, in.PlanID)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) || errors.Is(err, plans.ErrInactive) {
			return Order{}, ErrPlanUnavailable
		}
		return Order{}, err
	}

	o, err := s.buildOrder(ctx, userID, plan, in.CatIDs, in.Notes)
	if err != nil {
		return Order{}, err
	}

	sub, err := s.subs.Start(ctx, userID, plan)
	if err != nil {
		return Order{}, fmt.Errorf("start subscription: %w", err)
	}
	o.SubscriptionID = sub.ID

	if err := s.create(ctx, o, Actor{Type: ActorCustomer, ID: userID}); err != nil {
		if cerr := s.subs.CancelByID(ctx, sub.ID); cerr != nil {
			s.log.Error("rollback subscription failed", map[string]any{"subscription_id": sub.ID, "err": cerr})
		}
		return Order{}, err
	}

	s.notify(ctx, o)
	return o, nil
}

// PlaceRenewal implementa subscriptions.OrderPlacer: pedido nuevo con los gatos actuales del usuario.
func (s *Service) PlaceRenewal(ctx context.Context, sub subscriptions.Subscription) (string, error) {
	plan, err := s.plans.GetActive(ctx, sub.PlanID)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) || errors.Is(err, plans.ErrInactive) {
			return "", ErrPlanUnavailable
		}
		return "", err
	}

	o, err := s.buildOrder(ctx, sub.UserID, plan, nil, "")
	if err != nil {
		return "", err
	}
	o.SubscriptionID = sub.ID
	o.Renewal = true

	if err := s.create(ctx, o, Actor{Type: ActorSystem, ID: "renewals"}); err != nil {
		return "", err
	}
	s.notify(ctx, o)
	return o.ID, nil
}

func (s *Service) buildOrder(ctx context.Context, userID string, plan plans.Plan, catIDs []string, notes string) (Order, error) {
	profile, err := s.profiles.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Order{}, ErrIncompleteProfile
		}
		return Order{}, err
	}
	if !profile.DeliveryComplete() {
		return Order{}, ErrIncompleteProfile
	}
	if !s.Serves(profile.City) {
		return Order{}, fmt.Errorf("%w: %s", ErrCityNotServed, profile.City)
	}

	selected, err := s.selectCats(ctx, userID, catIDs)
	if err != nil {
		return Order{}, err
	}

	profs := make([]nutrition.Profile, len(selected))
	for i, c := range selected {
		p, unknownIssues, unknownAllergies := s.cats.NutritionProfile(c)
		if len(unknownIssues) > 0 || len(unknownAllergies) > 0 {
			s.log.Debug("unrecognized cat labels", map[string]any{
				"cat_id":    c.ID,
				"issues":    unknownIssues,
				"allergies": unknownAllergies,
			})
		}
		profs[i] = p
	}

	planned, err := s.engine.PlanBatch(ctx, profs, plan.DurationDays)
	if err != nil {
		return Order{}, fmt.Errorf("compute nutrition: %w", err)
	}

	now := s.now()
	o := Order{
		ID:           uuid.NewString(),
		UserID:       userID,
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		Status:       StatusPending,
		Total:        plan.Price,
		Currency:     plan.Currency,
		CustomerName: profile.FullName,
		Phone:        profile.Phone,
		City:         profile.City,
		Address:      profile.Address,
		Notes:        notes,
		Items:        make([]Item, 0, len(selected)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for i, c := range selected {
		p := planned[i]
		o.Items = append(o.Items, Item{
			ID:                 uuid.NewString(),
			OrderID:            o.ID,
			CatID:              c.ID,
			CatName:            c.Name,
			DailyCalories:      p.Requirements.DailyCalories,
			DailyGrams:         p.Requirements.DailyGrams,
			MenuRotation:       p.MenuRotation,
			AddOns:             p.AddOns,
			FeedingTimesPerDay: p.Feeding.TimesPerDay,
			PortionSizeGrams:   p.Feeding.PortionSizeGrams,
			CreatedAt:          now,
		})
		o.Summary.TotalDailyCalories += p.Requirements.DailyCalories
		o.Summary.TotalDailyGrams += p.Requirements.DailyGrams
	}
	o.Summary.TotalDailyGrams = math.Round(o.Summary.TotalDailyGrams*10) / 10
	o.Summary.CatCount = len(o.Items)

	return o, nil
}

// selectCats respeta el orden pedido; sin ids usa todos por fecha de alta.
func (s *Service) selectCats(ctx context.Context, userID string, catIDs []string) ([]cats.Cat, error) {
	owned, err := s.cats.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(catIDs) == 0 {
		sort.Slice(owned, func(i, j int) bool {
			if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
				return owned[i].CreatedAt.Before(owned[j].CreatedAt)
			}
			return owned[i].ID < owned[j].ID
		})
		if len(owned) == 0 {
			return nil, ErrNoCats
		}
		return owned, nil
	}

	byID := make(map[string]cats.Cat, len(owned))
	for _, c := range owned {
		byID[c.ID] = c
	}
	seen := make(map[string]struct{}, len(catIDs))
	out := make([]cats.Cat, 0, len(catIDs))
	for _, id := range catIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown cat %q", ErrInvalidInput, id)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoCats
	}
	return out, nil
}

func (s *Service) create(ctx context.Context, o Order, actor Actor) error {
	initial := StatusChange{
		ID:         uuid.NewString(),
		OrderID:    o.ID,
		To:         o.Status,
		Actor:      actor,
		OccurredAt: o.CreatedAt,
	}
	if err := s.repo.Create(ctx, o, initial); err != nil {
		return fmt.Errorf("store order: %w", err)
	}
	s.log.Info("order created", map[string]any{
		"order_id":  o.ID,
		"user_id":   o.UserID,
		"plan_id":   o.PlanID,
		"cat_count": o.Summary.CatCount,
		"renewal":   o.Renewal,
	})
	return nil
}

func (s *Service) notify(ctx context.Context, o Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderCreated(ctx, o); err != nil {
		s.log.Warn("order notification failed", map[string]any{"order_id": o.ID, "err": err})
	}
}

// Serves compara ciudades sin distinguir mayúsculas ni espacios extra.
func (s *Service) Serves(city string) bool {
	if len(s.cities) == 0 {
		return true
	}
	_, ok := s.cities[normalizeCity(city)]
	return ok
}

func normalizeCity(c string) string {
	return strings.ToLower(strings.Join(strings.Fields(c), " "))
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForUser: el dueño o un admin.
func (s *Service) GetForUser(ctx context.Context, id, userID string, isAdmin bool) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && o.UserID != userID {
		return Order{}, ErrForbidden
	}
	return o, nil
}

// ListByUser devuelve los pedidos más recientes primero.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *Service) History(ctx context.Context, orderID string) ([]StatusChange, error) {
	return s.repo.ListStatusChanges(ctx, orderID)
}

// UpdateStatus avanza el pedido según el ciclo de vida y registra el cambio.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, actor Actor, next Status, note string) (Order, error) {
	if !next.Valid() {
		return Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}
	if actor.Type == "" || strings.TrimSpace(actor.ID) == "" {
		return Order{}, ErrInvalidInput
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !o.Status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrBadState, o.Status, next)
	}

	now := s.now()
	change := StatusChange{
		ID:         uuid.NewString(),
		OrderID:    o.ID,
		From:       o.Status,
		To:         next,
		Actor:      actor,
		Note:       strings.TrimSpace(note),
		OccurredAt: now,
	}
	if err := s.repo.UpdateStatus(ctx, change, now); err != nil {
		return Order{}, err
	}

	o.Status = next
	o.UpdatedAt = now
	s.log.Info("order status changed", map[string]any{
		"order_id": o.ID,
		"from":     string(change.From),
		"to":       string(next),
		"actor":    string(actor.Type),
	})
	return o, nil
}

// Cancel: el cliente solo puede cancelar su pedido mientras está pending.
func (s *Service) Cancel(ctx context.Context, orderID, userID, note string) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrForbidden
	}
	if o.Status != StatusPending {
		return Order{}, fmt.Errorf("%w: only pending orders can be canceled by the customer", ErrBadState)
	}
	return s.UpdateStatus(ctx, orderID, Actor{Type: ActorCustomer, ID: userID}, StatusCanceled, note)
}
