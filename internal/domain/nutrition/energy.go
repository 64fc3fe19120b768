package nutrition

import (
	"fmt"
	"math"
)

// CalorieCalculation resultado del cálculo diario.
type CalorieCalculation struct {
	RER            float64 `json:"rer"`
	MER            float64 `json:"mer"`
	DailyCalories  int     `json:"daily_calories"`
	DailyGrams     float64 `json:"daily_grams"`
	ActivityFactor float64 `json:"activity_factor"`
	WeightFactor   float64 `json:"weight_factor"`
}

// RER (Resting Energy Requirement) = 70 * peso^0.75, en kcal/día.
// Solo tiene sentido con weightKg > 0.
func RER(weightKg float64) float64 {
	return 70 * math.Pow(weightKg, 0.75)
}

// ActivityFactor combina nivel de actividad, castración, edad y condición corporal.
// Sin tope superior: un gatito delgado y muy activo puede superar x5.
func ActivityFactor(level ActivityLevel, neutered bool, ageMonths, bcs int) float64 {
	factor := 1.0

	switch level {
	case ActivityLow:
		factor = 1.2
	case ActivityNormal:
		factor = 1.4
	case ActivityHigh:
		factor = 1.6
	}

	if neutered {
		factor *= 0.9
	}

	switch {
	case ageMonths < 4:
		factor *= 2.5
	case ageMonths < 6:
		factor *= 2.0
	case ageMonths < 12:
		factor *= 1.8
	case ageMonths > 84:
		factor *= 0.95
	}

	switch {
	case bcs <= 3:
		factor *= 1.2
	case bcs >= 7:
		factor *= 0.8
	}

	return factor
}

// WeightFactor estima el peso ideal a partir del BCS (sobrepeso => < 1).
func WeightFactor(bcs int) float64 {
	switch {
	case bcs >= 7:
		return 0.85
	case bcs == 6:
		return 0.9
	default:
		return 1.0
	}
}

// DailyRequirements calcula con la densidad calórica configurada.
func (e *Engine) DailyRequirements(p Profile) (CalorieCalculation, error) {
	return e.DailyRequirementsAt(p, e.cfg.CaloricDensityPer100g)
}

// DailyRequirementsAt calcula con una densidad explícita (kcal/100g).
// Densidad <= 0 es un error de validación del llamador.
func (e *Engine) DailyRequirementsAt(p Profile, densityPer100g float64) (CalorieCalculation, error) {
	if densityPer100g <= 0 || math.IsNaN(densityPer100g) {
		return CalorieCalculation{}, fmt.Errorf("%w: got %v", ErrInvalidDensity, densityPer100g)
	}

	af := ActivityFactor(p.Activity, p.Neutered, p.AgeMonths, p.BodyConditionScore)
	wf := WeightFactor(p.BodyConditionScore)

	rer := RER(p.WeightKg)
	mer := RER(p.WeightKg*wf) * af

	final := mer
	for _, h := range healthIssueOrder {
		m, ok := e.cfg.HealthAdjustments[h]
		if !ok || !p.HasIssue(h) {
			continue
		}
		final *= m
	}

	calories := int(math.Round(final))
	if calories < 0 {
		calories = 0
	}

	return CalorieCalculation{
		RER:            rer,
		MER:            mer,
		DailyCalories:  calories,
		DailyGrams:     round1(float64(calories) / densityPer100g * 100),
		ActivityFactor: af,
		WeightFactor:   wf,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
