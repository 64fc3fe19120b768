package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"catbox/internal/middleware"
)

// extra se monta dentro de /orders (p.ej. las notificaciones del pedido).
func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminChecker, extra ...func(chi.Router)) {
	r.Post("/checkout", checkoutHandler(svc))

	r.Route("/orders", func(or chi.Router) {
		or.Get("/", listOrdersHandler(svc))
		or.Get("/{orderID}", getOrderHandler(svc, admins))
		or.Post("/{orderID}/cancel", cancelOrderHandler(svc))

		or.With(middleware.RequireAdmin(admins)).Post("/{orderID}/status", updateStatusHandler(svc))

		for _, fn := range extra {
			fn(or)
		}
	})
}

type checkoutRequest struct {
	PlanID string   `json:"plan_id"`
	CatIDs []string `json:"cat_ids"` // opcional: vacío = todos mis gatos
	Notes  string   `json:"notes"`
}

type statusRequest struct {
	Status Status `json:"status" enums:"pending,confirmed,preparing,shipped,delivered,canceled"`
	Note   string `json:"note"`
}

type cancelRequest struct {
	Note string `json:"note"`
}

type itemResponse struct {
	ID                 string   `json:"id"`
	CatID              string   `json:"cat_id"`
	CatName            string   `json:"cat_name"`
	DailyCalories      int      `json:"daily_calories"`
	DailyGrams         float64  `json:"daily_grams"`
	MenuRotation       []string `json:"menu_rotation"`
	AddOns             []string `json:"add_ons"`
	FeedingTimesPerDay int      `json:"feeding_times_per_day"`
	PortionSizeGrams   float64  `json:"portion_size_grams"`
}

type summaryResponse struct {
	TotalDailyCalories int     `json:"total_daily_calories"`
	TotalDailyGrams    float64 `json:"total_daily_grams"`
	CatCount           int     `json:"cats_count"`
}

type statusChangeResponse struct {
	From       Status    `json:"from,omitempty"`
	To         Status    `json:"to"`
	ActorType  ActorType `json:"actor_type"`
	ActorID    string    `json:"actor_id"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type orderResponse struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	PlanID           string                 `json:"plan_id"`
	PlanName         string                 `json:"plan_name"`
	SubscriptionID   string                 `json:"subscription_id,omitempty"`
	Renewal          bool                   `json:"renewal"`
	Status           Status                 `json:"status"`
	Total            float64                `json:"total_price"`
	Currency         string                 `json:"currency"`
	CustomerName     string                 `json:"customer_name"`
	Phone            string                 `json:"phone"`
	City             string                 `json:"city"`
	Address          string                 `json:"address"`
	Notes            string                 `json:"notes,omitempty"`
	NutritionSummary summaryResponse        `json:"nutrition_summary"`
	Items            []itemResponse         `json:"items"`
	History          []statusChangeResponse `json:"history,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// checkoutHandler godoc
// @Summary Checkout
// @Description Crea un pedido pending con un plan nutricional por gato y abre la suscripción.
// @Tags orders
// @Accept json
// @Produce json
// @Param payload body checkoutRequest true "Plan y gatos"
// @Success 201 {object} orderResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {string} string "perfil incompleto / ciudad sin cobertura / sin gatos / plan no disponible"
// @Router /checkout [post]
func checkoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Checkout(r.Context(), claims.UserID, CheckoutInput{
			PlanID: req.PlanID,
			CatIDs: req.CatIDs,
			Notes:  req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOrderResponse(o, nil))
	}
}

// listOrdersHandler godoc
// @Summary Listar mis pedidos
// @Tags orders
// @Produce json
// @Success 200 {array} orderResponse
// @Failure 401 {string} string "unauthorized"
// @Router /orders [get]
func listOrdersHandler(svc *Service) http.HandlerFunc {
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
		out := make([]orderResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrderResponse(o, nil))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getOrderHandler godoc
// @Summary Obtener pedido
// @Description Dueño o admin. Incluye ítems e historial de estados.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} orderResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "order not found"
// @Router /orders/{orderID} [get]
func getOrderHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		isAdmin, err := admins.IsAdmin(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		o, err := svc.GetForUser(r.Context(), chi.URLParam(r, "orderID"), claims.UserID, isAdmin)
		if err != nil {
			writeError(w, err)
			return
		}

		history, err := svc.History(r.Context(), o.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o, history))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado del pedido (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param payload body statusRequest true "Nuevo estado"
// @Success 200 {object} orderResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "invalid status transition"
// @Router /orders/{orderID}/status [post]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"),
			Actor{Type: ActorAdmin, ID: claims.UserID}, req.Status, req.Note)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o, nil))
	}
}

// cancelOrderHandler godoc
// @Summary Cancelar mi pedido
// @Description Solo mientras está pending.
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param payload body cancelRequest false "Motivo"
// @Success 200 {object} orderResponse
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "invalid status transition"
// @Router /orders/{orderID}/cancel [post]
func cancelOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Body opcional
		var req cancelRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		o, err := svc.Cancel(r.Context(), chi.URLParam(r, "orderID"), claims.UserID, req.Note)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponse(o, nil))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrIncompleteProfile),
		errors.Is(err, ErrCityNotServed),
		errors.Is(err, ErrNoCats),
		errors.Is(err, ErrPlanUnavailable):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toOrderResponse(o Order, history []StatusChange) orderResponse {
	out := orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		PlanID:         o.PlanID,
		PlanName:       o.PlanName,
		SubscriptionID: o.SubscriptionID,
		Renewal:        o.Renewal,
		Status:         o.Status,
		Total:          o.Total,
		Currency:       o.Currency,
		CustomerName:   o.CustomerName,
		Phone:          o.Phone,
		City:           o.City,
		Address:        o.Address,
		Notes:          o.Notes,
		NutritionSummary: summaryResponse{
			TotalDailyCalories: o.Summary.TotalDailyCalories,
			TotalDailyGrams:    o.Summary.TotalDailyGrams,
			CatCount:           o.Summary.CatCount,
		},
		Items:     make([]itemResponse, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, itemResponse{
			ID:                 it.ID,
			CatID:              it.CatID,
			CatName:            it.CatName,
			DailyCalories:      it.DailyCalories,
			DailyGrams:         it.DailyGrams,
			MenuRotation:       it.MenuRotation,
			AddOns:             it.AddOns,
			FeedingTimesPerDay: it.FeedingTimesPerDay,
			PortionSizeGrams:   it.PortionSizeGrams,
		})
	}
	for _, h := range history {
		out.History = append(out.History, statusChangeResponse{
			From:       h.From,
			To:         h.To,
			ActorType:  h.Actor.Type,
			ActorID:    h.Actor.ID,
			Note:       h.Note,
			OccurredAt: h.OccurredAt,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
