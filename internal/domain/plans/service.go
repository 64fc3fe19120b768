package plans

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("plan not found")
	ErrInactive     = errors.New("plan is not active")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	repo     Repository
	currency string
	now      func() time.Time
}

// NewService: currency es la moneda por defecto de los planes nuevos.
func NewService(repo Repository, currency string) *Service {
	return &Service{
		repo:     repo,
		currency: strings.TrimSpace(currency),
		now:      time.Now,
	}
}

// ListActive ordena por duración y luego por nombre.
func (s *Service) ListActive(ctx context.Context) ([]Plan, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Plan, 0, len(all))
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DurationDays != out[j].DurationDays {
			return out[i].DurationDays < out[j].DurationDays
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Plan, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActive falla con ErrInactive si el plan existe pero está desactivado.
func (s *Service) GetActive(ctx context.Context, id string) (Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if !p.Active {
		return Plan{}, ErrInactive
	}
	return p, nil
}

type CreateInput struct {
	Name         string  `validate:"required,max=80"`
	Description  string  `validate:"max=500"`
	Price        float64 `validate:"gt=0"`
	Currency     string  `validate:"omitempty,len=3"`
	DurationDays int     `validate:"gte=1,lte=365"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Plan, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))

	if err := validate.Struct(in); err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Currency == "" {
		in.Currency = s.currency
	}

	now := s.now()
	p := Plan{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Currency:     in.Currency,
		DurationDays: in.DurationDays,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if p.Active == active {
		return p, nil
	}
	p.Active = active
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}
