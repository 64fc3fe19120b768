package plans

import "time"

// Plan de suscripción. DurationDays define también el largo del menú de cada pedido.
type Plan struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Currency     string
	DurationDays int
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Planes sembrados por la migración inicial (y por el repo in-memory).
const (
	WeeklyPlanID  = "00000000-0000-4000-8000-000000000007"
	MonthlyPlanID = "00000000-0000-4000-8000-000000000030"
)

// Seed devuelve los planes por defecto de la tienda.
func Seed(currency string, now time.Time) []Plan {
	return []Plan{
		{
			ID:           WeeklyPlanID,
			Name:         "Weekly",
			Description:  "Fresh meals for 7 days, delivered weekly",
			Price:        450,
			Currency:     currency,
			DurationDays: 7,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           MonthlyPlanID,
			Name:         "Monthly",
			Description:  "Fresh meals for 30 days, delivered monthly",
			Price:        1600,
			Currency:     currency,
			DurationDays: 30,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
