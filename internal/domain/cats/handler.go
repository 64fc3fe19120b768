package cats

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"catbox/internal/domain/nutrition"
	"catbox/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Post("/", createCatHandler(svc))
		cr.Get("/", listCatsHandler(svc))

		// Solo el dueño
		cr.Get("/{catID}", getCatHandler(svc))
		cr.Patch("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc))
		cr.Get("/{catID}/nutrition", catNutritionHandler(svc))
	})
}

type createCatRequest struct {
	Name                string                    `json:"name"`
	Sex                 Sex                       `json:"sex" enums:"male,female,unknown"`
	Breed               string                    `json:"breed"`
	AgeMonths           int                       `json:"age_months"`
	WeightKg            float64                   `json:"weight_kg"`
	Neutered            bool                      `json:"neutered"`
	ActivityLevel       nutrition.ActivityLevel   `json:"activity_level" enums:"low,normal,high"`
	BodyConditionScore  int                       `json:"body_condition_score"`
	Allergies           []string                  `json:"allergies"`
	HealthIssues        []string                  `json:"health_issues"`
	DislikedIngredients []string                  `json:"disliked_ingredients"`
	FoodPreferences     nutrition.FoodPreferences `json:"food_preferences"`
	FeedingTimesPerDay  int                       `json:"feeding_times_per_day"`
	Notes               string                    `json:"notes"`
}

type updateCatRequest struct {
	Name                *string                    `json:"name"`
	Sex                 *Sex                       `json:"sex"`
	Breed               *string                    `json:"breed"`
	AgeMonths           *int                       `json:"age_months"`
	WeightKg            *float64                   `json:"weight_kg"`
	Neutered            *bool                      `json:"neutered"`
	ActivityLevel       *nutrition.ActivityLevel   `json:"activity_level"`
	BodyConditionScore  *int                       `json:"body_condition_score"`
	Allergies           *[]string                  `json:"allergies"`
	HealthIssues        *[]string                  `json:"health_issues"`
	DislikedIngredients *[]string                  `json:"disliked_ingredients"`
	FoodPreferences     *nutrition.FoodPreferences `json:"food_preferences"`
	FeedingTimesPerDay  *int                       `json:"feeding_times_per_day"`
	Notes               *string                    `json:"notes"`
}

type catResponse struct {
	ID                  string                    `json:"id"`
	OwnerUserID         string                    `json:"owner_user_id"`
	Name                string                    `json:"name"`
	Sex                 Sex                       `json:"sex"`
	Breed               string                    `json:"breed"`
	AgeMonths           int                       `json:"age_months"`
	WeightKg            float64                   `json:"weight_kg"`
	Neutered            bool                      `json:"neutered"`
	ActivityLevel       nutrition.ActivityLevel   `json:"activity_level"`
	BodyConditionScore  int                       `json:"body_condition_score"`
	Allergies           []string                  `json:"allergies"`
	HealthIssues        []string                  `json:"health_issues"`
	DislikedIngredients []string                  `json:"disliked_ingredients"`
	FoodPreferences     nutrition.FoodPreferences `json:"food_preferences"`
	FeedingTimesPerDay  int                       `json:"feeding_times_per_day"`
	Notes               string                    `json:"notes"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// createCatHandler godoc
// @Summary Registrar gato
// @Tags cats
// @Accept json
// @Produce json
// @Param payload body createCatRequest true "Perfil del gato"
// @Success 201 {object} catResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /cats [post]
func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:                req.Name,
			Sex:                 req.Sex,
			Breed:               req.Breed,
			AgeMonths:           req.AgeMonths,
			WeightKg:            req.WeightKg,
			Neutered:            req.Neutered,
			ActivityLevel:       req.ActivityLevel,
			BodyConditionScore:  req.BodyConditionScore,
			Allergies:           req.Allergies,
			HealthIssues:        req.HealthIssues,
			DislikedIngredients: req.DislikedIngredients,
			FoodPreferences:     req.FoodPreferences,
			FeedingTimesPerDay:  req.FeedingTimesPerDay,
			Notes:               req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(c))
	}
}

// listCatsHandler godoc
// @Summary Listar mis gatos
// @Tags cats
// @Produce json
// @Success 200 {array} catResponse
// @Failure 401 {string} string "unauthorized"
// @Router /cats [get]
func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCatResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCatHandler godoc
// @Summary Obtener gato
// @Tags cats
// @Produce json
// @Param catID path string true "Cat ID"
// @Success 200 {object} catResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [get]
func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetOwned(r.Context(), chi.URLParam(r, "catID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// updateCatHandler godoc
// @Summary Actualizar gato
// @Description PATCH parcial; los campos omitidos no se tocan.
// @Tags cats
// @Accept json
// @Produce json
// @Param catID path string true "Cat ID"
// @Param payload body updateCatRequest true "Campos a modificar"
// @Success 200 {object} catResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [patch]
func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateCatRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "catID"), claims.UserID, UpdateInput{
			Name:                req.Name,
			Sex:                 req.Sex,
			Breed:               req.Breed,
			AgeMonths:           req.AgeMonths,
			WeightKg:            req.WeightKg,
			Neutered:            req.Neutered,
			ActivityLevel:       req.ActivityLevel,
			BodyConditionScore:  req.BodyConditionScore,
			Allergies:           req.Allergies,
			HealthIssues:        req.HealthIssues,
			DislikedIngredients: req.DislikedIngredients,
			FoodPreferences:     req.FoodPreferences,
			FeedingTimesPerDay:  req.FeedingTimesPerDay,
			Notes:               req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// deleteCatHandler godoc
// @Summary Borrar gato
// @Tags cats
// @Param catID path string true "Cat ID"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [delete]
func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "catID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// catNutritionHandler godoc
// @Summary Plan nutricional del gato
// @Description Requerimientos diarios, rotación de menú de N días, suplementos y recomendaciones.
// @Tags cats
// @Produce json
// @Param catID path string true "Cat ID"
// @Param days query int false "Días de menú (default 7)"
// @Success 200 {object} nutrition.PreviewResponse
// @Failure 400 {string} string "invalid days"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/nutrition [get]
func catNutritionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := nutrition.DefaultMenuDays
		if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "days must be an integer", http.StatusBadRequest)
				return
			}
			days = n
		}
		if days < 0 || days > nutrition.MaxMenuDays {
			http.Error(w, fmt.Sprintf("days must be between 0 and %d", nutrition.MaxMenuDays), http.StatusBadRequest)
			return
		}

		out, err := svc.Nutrition(r.Context(), chi.URLParam(r, "catID"), claims.UserID, days)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, nutrition.ErrInvalidDays):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:                  c.ID,
		OwnerUserID:         c.OwnerUserID,
		Name:                c.Name,
		Sex:                 c.Sex,
		Breed:               c.Breed,
		AgeMonths:           c.AgeMonths,
		WeightKg:            c.WeightKg,
		Neutered:            c.Neutered,
		ActivityLevel:       c.ActivityLevel,
		BodyConditionScore:  c.BodyConditionScore,
		Allergies:           nonNil(c.Allergies),
		HealthIssues:        nonNil(c.HealthIssues),
		DislikedIngredients: nonNil(c.DislikedIngredients),
		FoodPreferences:     c.FoodPreferences,
		FeedingTimesPerDay:  c.FeedingTimesPerDay,
		Notes:               c.Notes,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
