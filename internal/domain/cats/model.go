package cats

import (
	"time"

	"catbox/internal/domain/nutrition"
)

// Sex define el sexo del gato.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Breed razas sugeridas en el formulario; se acepta texto libre.
type Breed string

const (
	BreedPersian   Breed = "persian"
	BreedSiamese   Breed = "siamese"
	BreedMaineCoon Breed = "maine_coon"
	BreedBritish   Breed = "british_shorthair"
	BreedBaladi    Breed = "baladi"
	BreedOther     Breed = "other"
)

// Cat es el perfil que carga el dueño. Alergias y problemas de salud se guardan
// como los escribió el usuario; el catálogo de nutrition los traduce al calcular.
type Cat struct {
	ID          string
	OwnerUserID string

	Name  string `validate:"required,max=60"`
	Sex   Sex    `validate:"oneof=male female unknown"`
	Breed string `validate:"max=60"`

	AgeMonths          int     `validate:"gte=0,lte=300"`
	WeightKg           float64 `validate:"gte=0.1,lte=15"`
	Neutered           bool
	ActivityLevel      nutrition.ActivityLevel `validate:"oneof=low normal high"`
	BodyConditionScore int                     `validate:"gte=1,lte=9"`

	Allergies           []string `validate:"max=20,dive,required,max=60"`
	HealthIssues        []string `validate:"max=20,dive,required,max=60"`
	DislikedIngredients []string `validate:"max=20,dive,required,max=60"`
	FoodPreferences     nutrition.FoodPreferences
	FeedingTimesPerDay  int `validate:"gte=0,lte=6"`

	Notes string `validate:"max=500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
