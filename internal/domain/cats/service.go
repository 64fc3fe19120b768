package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"catbox/internal/domain/nutrition"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
	ErrForbidden    = errors.New("forbidden")
)

// Valores por defecto del formulario.
const (
	DefaultBodyConditionScore = 5
	DefaultActivity           = nutrition.ActivityNormal
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	repo   Repository
	engine *nutrition.Engine
	now    func() time.Time
}

func NewService(repo Repository, engine *nutrition.Engine) *Service {
	if engine == nil {
		engine = nutrition.Default()
	}
	return &Service{
		repo:   repo,
		engine: engine,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name                string
	Sex                 Sex
	Breed               string
	AgeMonths           int
	WeightKg            float64
	Neutered            bool
	ActivityLevel       nutrition.ActivityLevel
	BodyConditionScore  int
	Allergies           []string
	HealthIssues        []string
	DislikedIngredients []string
	FoodPreferences     nutrition.FoodPreferences
	FeedingTimesPerDay  int
	Notes               string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Cat, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Cat{}, ErrInvalidInput
	}

	now := s.now()
	c := Cat{
		ID:                  uuid.NewString(),
		OwnerUserID:         ownerUserID,
		Name:                strings.TrimSpace(in.Name),
		Sex:                 in.Sex,
		Breed:               strings.TrimSpace(in.Breed),
		AgeMonths:           in.AgeMonths,
		WeightKg:            in.WeightKg,
		Neutered:            in.Neutered,
		ActivityLevel:       in.ActivityLevel,
		BodyConditionScore:  in.BodyConditionScore,
		Allergies:           cleanLabels(in.Allergies),
		HealthIssues:        cleanLabels(in.HealthIssues),
		DislikedIngredients: cleanLabels(in.DislikedIngredients),
		FoodPreferences:     in.FoodPreferences,
		FeedingTimesPerDay:  in.FeedingTimesPerDay,
		Notes:               strings.TrimSpace(in.Notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	applyDefaults(&c)

	if err := validateCat(c); err != nil {
		return Cat{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name                *string
	Sex                 *Sex
	Breed               *string
	AgeMonths           *int
	WeightKg            *float64
	Neutered            *bool
	ActivityLevel       *nutrition.ActivityLevel
	BodyConditionScore  *int
	Allergies           *[]string
	HealthIssues        *[]string
	DislikedIngredients *[]string
	FoodPreferences     *nutrition.FoodPreferences
	FeedingTimesPerDay  *int
	Notes               *string
}

// Update solo lo puede hacer el dueño.
func (s *Service) Update(ctx context.Context, catID, userID string, in UpdateInput) (Cat, error) {
	c, err := s.GetOwned(ctx, catID, userID)
	if err != nil {
		return Cat{}, err
	}

	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Sex != nil {
		c.Sex = *in.Sex
	}
	if in.Breed != nil {
		c.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.AgeMonths != nil {
		c.AgeMonths = *in.AgeMonths
	}
	if in.WeightKg != nil {
		c.WeightKg = *in.WeightKg
	}
	if in.Neutered != nil {
		c.Neutered = *in.Neutered
	}
	if in.ActivityLevel != nil {
		c.ActivityLevel = *in.ActivityLevel
	}
	if in.BodyConditionScore != nil {
		c.BodyConditionScore = *in.BodyConditionScore
	}
	if in.Allergies != nil {
		c.Allergies = cleanLabels(*in.Allergies)
	}
	if in.HealthIssues != nil {
		c.HealthIssues = cleanLabels(*in.HealthIssues)
	}
	if in.DislikedIngredients != nil {
		c.DislikedIngredients = cleanLabels(*in.DislikedIngredients)
	}
	if in.FoodPreferences != nil {
		c.FoodPreferences = *in.FoodPreferences
	}
	if in.FeedingTimesPerDay != nil {
		c.FeedingTimesPerDay = *in.FeedingTimesPerDay
	}
	if in.Notes != nil {
		c.Notes = strings.TrimSpace(*in.Notes)
	}
	applyDefaults(&c)

	if err := validateCat(c); err != nil {
		return Cat{}, err
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, catID, userID string) error {
	if _, err := s.GetOwned(ctx, catID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, catID)
}

// NutritionProfile traduce el gato al perfil del motor.
// Devuelve los labels de salud y alergias que el catálogo no reconoce.
func (s *Service) NutritionProfile(c Cat) (nutrition.Profile, []string, []string) {
	cat := s.engine.Catalog()
	issues, unknownIssues := cat.ParseHealthIssues(c.HealthIssues)
	allergies, unknownAllergies := cat.ParseAllergies(c.Allergies)

	return nutrition.Profile{
		WeightKg:           c.WeightKg,
		AgeMonths:          c.AgeMonths,
		Activity:           c.ActivityLevel,
		Neutered:           c.Neutered,
		BodyConditionScore: c.BodyConditionScore,
		HealthIssues:       issues,
		Allergies:          allergies,
		FeedingTimesPerDay: c.FeedingTimesPerDay,
		FoodPreferences:    c.FoodPreferences,
	}, unknownIssues, unknownAllergies
}

// Nutrition calcula el plan del gato (dueño únicamente) para days días de menú.
func (s *Service) Nutrition(ctx context.Context, catID, userID string, days int) (nutrition.PreviewResponse, error) {
	c, err := s.GetOwned(ctx, catID, userID)
	if err != nil {
		return nutrition.PreviewResponse{}, err
	}

	p, unknownIssues, unknownAllergies := s.NutritionProfile(c)
	plan, err := s.engine.Plan(p, days)
	if err != nil {
		return nutrition.PreviewResponse{}, err
	}
	return nutrition.PreviewResponse{
		Plan:                     plan,
		UnrecognizedHealthIssues: unknownIssues,
		UnrecognizedAllergies:    unknownAllergies,
	}, nil
}

func applyDefaults(c *Cat) {
	if c.Sex == "" {
		c.Sex = SexUnknown
	}
	if c.ActivityLevel == "" {
		c.ActivityLevel = DefaultActivity
	}
	if c.BodyConditionScore == 0 {
		c.BodyConditionScore = DefaultBodyConditionScore
	}
}

func validateCat(c Cat) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// cleanLabels recorta espacios y descarta vacíos; conserva el texto del usuario.
func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
