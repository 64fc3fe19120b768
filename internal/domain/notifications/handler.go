package notifications

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes se monta dentro de /orders; admin es el middleware de rol.
func RegisterRoutes(r chi.Router, svc *Service, admin func(http.Handler) http.Handler) {
	r.With(admin).Get("/{orderID}/notifications", listByOrderHandler(svc))
}

type notificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Type      Channel   `json:"type"`
	Audience  Audience  `json:"audience"`
	Status    Status    `json:"status" enums:"queued,sent,failed"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// listByOrderHandler godoc
// @Summary Notificaciones de un pedido (admin)
// @Tags notifications
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {array} notificationResponse
// @Failure 403 {string} string "forbidden"
// @Router /orders/{orderID}/notifications [get]
func listByOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOrder(r.Context(), chi.URLParam(r, "orderID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, notificationResponse{
				ID:        n.ID,
				OrderID:   n.OrderID,
				Type:      n.Channel,
				Audience:  n.Audience,
				Status:    n.Status,
				Payload:   n.Payload,
				CreatedAt: n.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
