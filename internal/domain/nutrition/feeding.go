package nutrition

import (
	"fmt"
	"strconv"
)

type FeedingPlan struct {
	TimesPerDay      int      `json:"times_per_day"`
	PortionSizeGrams float64  `json:"portion_size_grams"`
	Tips             []string `json:"tips"`
}

// PortionSize gramos por comida redondeados a 1 decimal.
func PortionSize(dailyGrams float64, timesPerDay int) float64 {
	if timesPerDay <= 0 {
		timesPerDay = DefaultFeedingTimes
	}
	return round1(dailyGrams / float64(timesPerDay))
}

// FeedingRecommendations usa la densidad configurada del Engine.
func (e *Engine) FeedingRecommendations(p Profile) (FeedingPlan, error) {
	calc, err := e.DailyRequirements(p)
	if err != nil {
		return FeedingPlan{}, err
	}
	return e.feedingPlan(p, calc), nil
}

func (e *Engine) feedingPlan(p Profile, calc CalorieCalculation) FeedingPlan {
	t := e.cfg.Catalog.Tips
	times := p.TimesPerDay()
	portion := PortionSize(calc.DailyGrams, times)

	tips := []string{
		fmt.Sprintf(t.SplitMeals, times),
		fmt.Sprintf(t.PerMeal, strconv.FormatFloat(portion, 'f', -1, 64)),
		t.FreshWater,
		t.WeeklyWeighIn,
	}
	if p.AgeMonths < 12 {
		tips = append(tips, t.KittenMeals)
	}
	if p.HasIssue(HealthDiabetes) {
		tips = append(tips, t.DiabetesInsulin)
	}
	if p.BodyConditionScore >= 7 {
		tips = append(tips, t.IncreaseActivity)
	}

	return FeedingPlan{
		TimesPerDay:      times,
		PortionSizeGrams: portion,
		Tips:             tips,
	}
}
