package nutrition

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ActivityLevel nivel de actividad declarado por el dueño.
// @Enum low, normal, high
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

// HealthIssue es el vocabulario cerrado de condiciones que el motor reconoce.
// Los textos libres se traducen a estos tags vía Catalog.
type HealthIssue string

const (
	HealthDiabetes        HealthIssue = "diabetes"
	HealthKidneyDisease   HealthIssue = "kidney_disease"
	HealthJointProblems   HealthIssue = "joint_problems"
	HealthSkinAllergy     HealthIssue = "skin_allergy"
	HealthDigestiveIssues HealthIssue = "digestive_issues"
)

// healthIssueOrder fija el orden en que se aplican los ajustes (resultado bit a bit estable).
var healthIssueOrder = []HealthIssue{
	HealthDiabetes,
	HealthKidneyDisease,
	HealthJointProblems,
	HealthSkinAllergy,
	HealthDigestiveIssues,
}

// Protein proteínas base de la rotación.
type Protein string

const (
	ProteinChicken Protein = "chicken"
	ProteinSalmon  Protein = "salmon"
	ProteinBeef    Protein = "beef"
	ProteinTuna    Protein = "tuna"
	ProteinTurkey  Protein = "turkey"
)

type FoodPreferences struct {
	Wet bool `json:"wet" yaml:"wet"`
	Dry bool `json:"dry" yaml:"dry"`
	Raw bool `json:"raw" yaml:"raw"`
}

// Profile es el snapshot biométrico de un gato que recibe el motor.
// Los tags validate describen las precondiciones del llamador (ver ValidateProfile);
// el motor no las revisa.
type Profile struct {
	WeightKg           float64         `json:"weight_kg" yaml:"weight_kg" validate:"gte=0.1,lte=15"`
	AgeMonths          int             `json:"age_months" yaml:"age_months" validate:"gte=0,lte=300"`
	Activity           ActivityLevel   `json:"activity_level" yaml:"activity_level" validate:"oneof=low normal high"`
	Neutered           bool            `json:"neutered" yaml:"neutered"`
	BodyConditionScore int             `json:"body_condition_score" yaml:"body_condition_score" validate:"gte=1,lte=9"`
	HealthIssues       []HealthIssue   `json:"health_issues" yaml:"health_issues" validate:"dive,oneof=diabetes kidney_disease joint_problems skin_allergy digestive_issues"`
	Allergies          []Protein       `json:"allergies" yaml:"allergies" validate:"dive,oneof=chicken salmon beef tuna turkey"`
	FeedingTimesPerDay int             `json:"feeding_times_per_day" yaml:"feeding_times_per_day" validate:"gte=0,lte=6"`
	FoodPreferences    FoodPreferences `json:"food_preferences" yaml:"food_preferences"`
}

// DefaultFeedingTimes se usa cuando FeedingTimesPerDay no viene seteado.
const DefaultFeedingTimes = 2

func (p Profile) HasIssue(h HealthIssue) bool {
	for _, x := range p.HealthIssues {
		if x == h {
			return true
		}
	}
	return false
}

func (p Profile) AllergicTo(pr Protein) bool {
	for _, x := range p.Allergies {
		if x == pr {
			return true
		}
	}
	return false
}

func (p Profile) TimesPerDay() int {
	if p.FeedingTimesPerDay <= 0 {
		return DefaultFeedingTimes
	}
	return p.FeedingTimesPerDay
}

var ErrInvalidProfile = errors.New("invalid nutrition profile")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateProfile aplica los rangos plausibles (peso, edad, BCS, comidas).
// Es la capa de precondiciones del llamador: el motor asume un perfil ya validado.
func ValidateProfile(p Profile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}
