package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, engine *Engine) {
	// Sin auth: es el preview del formulario de gato antes de guardarlo.
	r.Post("/nutrition/preview", previewHandler(engine))
}

// previewRequest usa labels libres igual que el formulario; el catálogo los traduce.
type previewRequest struct {
	WeightKg           float64         `json:"weight_kg"`
	AgeMonths          int             `json:"age_months"`
	ActivityLevel      ActivityLevel   `json:"activity_level" enums:"low,normal,high"`
	Neutered           bool            `json:"neutered"`
	BodyConditionScore int             `json:"body_condition_score"`
	HealthIssues       []string        `json:"health_issues"`
	Allergies          []string        `json:"allergies"`
	FeedingTimesPerDay int             `json:"feeding_times_per_day"`
	FoodPreferences    FoodPreferences `json:"food_preferences"`
	Days               *int            `json:"days"` // opcional, default 7, máx 365
}

// PreviewResponse también lo usa cats para GET /cats/{catID}/nutrition.
type PreviewResponse struct {
	Plan
	UnrecognizedHealthIssues []string `json:"unrecognized_health_issues,omitempty"`
	UnrecognizedAllergies    []string `json:"unrecognized_allergies,omitempty"`
}

const (
	DefaultMenuDays = 7
	MaxMenuDays     = 365
)

// previewHandler godoc
// @Summary Previsualizar requerimientos nutricionales
// @Description Calcula requerimientos diarios, rotación de menú, suplementos y recomendaciones de alimentación para un perfil ad-hoc. No persiste nada.
// @Tags nutrition
// @Accept json
// @Produce json
// @Param payload body previewRequest true "Perfil del gato"
// @Success 200 {object} PreviewResponse
// @Failure 400 {string} string "invalid json / perfil o días fuera de rango"
// @Router /nutrition/preview [post]
func previewHandler(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		days := DefaultMenuDays
		if req.Days != nil {
			days = *req.Days
		}
		if days < 0 || days > MaxMenuDays {
			http.Error(w, fmt.Sprintf("days must be between 0 and %d", MaxMenuDays), http.StatusBadRequest)
			return
		}

		cat := engine.Catalog()
		issues, unknownIssues := cat.ParseHealthIssues(req.HealthIssues)
		allergies, unknownAllergies := cat.ParseAllergies(req.Allergies)

		p := Profile{
			WeightKg:           req.WeightKg,
			AgeMonths:          req.AgeMonths,
			Activity:           req.ActivityLevel,
			Neutered:           req.Neutered,
			BodyConditionScore: req.BodyConditionScore,
			HealthIssues:       issues,
			Allergies:          allergies,
			FeedingTimesPerDay: req.FeedingTimesPerDay,
			FoodPreferences:    req.FoodPreferences,
		}
		if err := ValidateProfile(p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		plan, err := engine.Plan(p, days)
		if err != nil {
			if errors.Is(err, ErrInvalidDays) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, PreviewResponse{
			Plan:                     plan,
			UnrecognizedHealthIssues: unknownIssues,
			UnrecognizedAllergies:    unknownAllergies,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
