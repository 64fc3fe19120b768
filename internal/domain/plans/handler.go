package plans

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: lectura pública; alta y activación pasan por admin.
func RegisterRoutes(r chi.Router, svc *Service, admin func(http.Handler) http.Handler) {
	r.Route("/plans", func(pr chi.Router) {
		pr.Get("/", listPlansHandler(svc))
		pr.Get("/{planID}", getPlanHandler(svc))

		pr.Group(func(ar chi.Router) {
			ar.Use(admin)
			ar.Post("/", createPlanHandler(svc))
			ar.Post("/{planID}/activate", setActiveHandler(svc, true))
			ar.Post("/{planID}/deactivate", setActiveHandler(svc, false))
		})
	})
}

type createPlanRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"duration_days"`
}

type planResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"duration_days"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// listPlansHandler godoc
// @Summary Listar planes activos
// @Tags plans
// @Produce json
// @Success 200 {array} planResponse
// @Router /plans [get]
func listPlansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]planResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlanResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPlanHandler godoc
// @Summary Obtener plan
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} planResponse
// @Failure 404 {string} string "plan not found"
// @Router /plans/{planID} [get]
func getPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

// createPlanHandler godoc
// @Summary Crear plan (admin)
// @Tags plans
// @Accept json
// @Produce json
// @Param payload body createPlanRequest true "Plan"
// @Success 201 {object} planResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Router /plans [post]
func createPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Currency:     req.Currency,
			DurationDays: req.DurationDays,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPlanResponse(p))
	}
}

// setActiveHandler godoc
// @Summary Activar / desactivar plan (admin)
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} planResponse
// @Failure 404 {string} string "plan not found"
// @Router /plans/{planID}/activate [post]
// @Router /plans/{planID}/deactivate [post]
func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.SetActive(r.Context(), chi.URLParam(r, "planID"), active)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "plan not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPlanResponse(p Plan) planResponse {
	return planResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
