package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"catbox/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/subscriptions", func(sr chi.Router) {
		sr.Get("/", listSubscriptionsHandler(svc))
		sr.Post("/{subscriptionID}/pause", transitionHandler(svc.Pause))
		sr.Post("/{subscriptionID}/resume", transitionHandler(svc.Resume))
		sr.Post("/{subscriptionID}/cancel", transitionHandler(svc.Cancel))
	})
}

type subscriptionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PlanID          string    `json:"plan_id"`
	Status          Status    `json:"status" enums:"active,paused,canceled"`
	StartDate       time.Time `json:"start_date"`
	NextRenewalDate time.Time `json:"next_renewal_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// listSubscriptionsHandler godoc
// @Summary Listar mis suscripciones
// @Tags subscriptions
// @Produce json
// @Success 200 {array} subscriptionResponse
// @Failure 401 {string} string "unauthorized"
// @Router /subscriptions [get]
func listSubscriptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]subscriptionResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSubscriptionResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type transitionFunc func(ctx context.Context, id, userID string) (Subscription, error)

// transitionHandler godoc
// @Summary Pausar / reanudar / cancelar suscripción
// @Tags subscriptions
// @Produce json
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} subscriptionResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "subscription not found"
// @Failure 409 {string} string "invalid subscription state"
// @Router /subscriptions/{subscriptionID}/pause [post]
// @Router /subscriptions/{subscriptionID}/resume [post]
// @Router /subscriptions/{subscriptionID}/cancel [post]
func transitionHandler(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sub, err := fn(r.Context(), chi.URLParam(r, "subscriptionID"), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "subscription not found", http.StatusNotFound)
			case errors.Is(err, ErrBadState):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
	}
}

func toSubscriptionResponse(s Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		PlanID:          s.PlanID,
		Status:          s.Status,
		StartDate:       s.StartDate,
		NextRenewalDate: s.NextRenewalDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
