package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"catbox/internal/platform/phone"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("eg_mobile", func(fl validator.FieldLevel) bool {
		return phone.IsEgyptianMobile(fl.Field().String())
	})
	return v
}

type Service struct {
	repo       Repository
	adminEmail string
	now        func() time.Time
}

// NewService: adminEmail (opcional) recibe rol admin al crear su perfil.
func NewService(repo Repository, adminEmail string) *Service {
	return &Service{
		repo:       repo,
		adminEmail: strings.TrimSpace(adminEmail),
		now:        time.Now,
	}
}

// Get devuelve el perfil del usuario; en el primer acceso crea uno vacío de cliente.
func (s *Service) Get(ctx context.Context, userID, email string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	now := s.now()
	p = Profile{
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.adminEmail != "" && strings.EqualFold(p.Email, s.adminEmail) {
		p.Role = RoleAdmin
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Lookup no crea perfiles (lo usan orders y notifications).
func (s *Service) Lookup(ctx context.Context, userID string) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	FullName *string `validate:"omitempty,min=2,max=120"`
	Phone    *string `validate:"omitempty,eg_mobile"`
	City     *string `validate:"omitempty,max=80"`
	Address  *string `validate:"omitempty,max=300"`
}

func (s *Service) Update(ctx context.Context, userID, email string, in UpdateInput) (Profile, error) {
	trim(in.FullName)
	trim(in.Phone)
	trim(in.City)
	trim(in.Address)

	if err := validate.Struct(in); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, err := s.Get(ctx, userID, email)
	if err != nil {
		return Profile{}, err
	}

	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = phone.FormatE164(*in.Phone)
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// IsAdmin: un usuario sin perfil no es admin.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsAdmin(), nil
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
