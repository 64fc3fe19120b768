package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catbox/internal/domain/plans"
	"catbox/internal/platform/config"
	"catbox/internal/router"
)

const (
	adminID    = "admin-1"
	adminEmail = "owner@catbox.test"
	customerID = "customer-1"
	strangerID = "stranger-1"
)

func newTestApp(t *testing.T) (*router.App, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Store.AdminEmail = adminEmail
	cfg.Store.AdminWhatsApp = "+201000000001"

	app := router.New(router.Options{AuthVerifier: nil, Config: cfg})
	ts := httptest.NewServer(app.Handler)
	t.Cleanup(ts.Close)
	return app, ts
}

func TestHTTP_EndToEnd_CheckoutLifecycle(t *testing.T) {
	app, ts := newTestApp(t)

	// 1) El admin entra por primera vez y queda con rol admin
	{
		st, body := doReq(t, ts.URL, "GET", "/me/profile", adminID, adminEmail, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var p struct {
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "admin", p.Role)
	}

	// 2) Cliente sin datos de entrega no puede hacer checkout
	{
		st, _ := doReq(t, ts.URL, "GET", "/me/profile", customerID, "mona@example.com", nil)
		require.Equal(t, http.StatusOK, st)

		st, body := doReq(t, ts.URL, "POST", "/checkout", customerID, "", map[string]any{
			"plan_id": plans.WeeklyPlanID,
		})
		require.Equal(t, http.StatusUnprocessableEntity, st, string(body))
	}

	// 3) Completa el perfil
	{
		st, body := doReq(t, ts.URL, "PATCH", "/me/profile", customerID, "", map[string]any{
			"full_name": "Mona Adel",
			"phone":     "010 1234 5678",
			"city":      " cairo ",
			"address":   "12 Nile St, Zamalek",
		})
		require.Equal(t, http.StatusOK, st, string(body))
		var p struct {
			Phone            string `json:"phone"`
			DeliveryComplete bool   `json:"delivery_complete"`
		}
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "+201012345678", p.Phone)
		assert.True(t, p.DeliveryComplete)
	}

	// 4) Sin gatos => 422
	{
		st, _ := doReq(t, ts.URL, "POST", "/checkout", customerID, "", map[string]any{
			"plan_id": plans.WeeklyPlanID,
		})
		require.Equal(t, http.StatusUnprocessableEntity, st)
	}

	// 5) Crea un gato
	catID := createCat(t, ts.URL, customerID, map[string]any{
		"name":                 "Mishmish",
		"sex":                  "female",
		"age_months":           24,
		"weight_kg":            4,
		"neutered":             true,
		"activity_level":       "normal",
		"body_condition_score": 5,
	})

	// 6) Checkout
	var order orderResp
	{
		st, body := doReq(t, ts.URL, "POST", "/checkout", customerID, "", map[string]any{
			"plan_id": plans.WeeklyPlanID,
			"cat_ids": []string{catID},
			"notes":   "ring twice",
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		require.NoError(t, json.Unmarshal(body, &order))
	}
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 450.0, order.TotalPrice)
	assert.Equal(t, "Weekly", order.PlanName)
	assert.Equal(t, 249, order.NutritionSummary.TotalDailyCalories)
	assert.InDelta(t, 71.1, order.NutritionSummary.TotalDailyGrams, 1e-9)
	assert.Equal(t, 1, order.NutritionSummary.CatsCount)
	require.Len(t, order.Items, 1)
	assert.Len(t, order.Items[0].MenuRotation, 7)
	assert.NotEmpty(t, order.SubscriptionID)

	// 7) Otro usuario no ve el pedido; el dueño sí, con historial
	{
		st, _ := doReq(t, ts.URL, "GET", "/orders/"+order.ID, strangerID, "", nil)
		require.Equal(t, http.StatusForbidden, st)

		st, body := doReq(t, ts.URL, "GET", "/orders/"+order.ID, customerID, "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var got orderResp
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got.History, 1)
		assert.Equal(t, "pending", got.History[0].To)
	}

	// 8) Solo el admin cambia el estado
	{
		st, _ := doReq(t, ts.URL, "POST", "/orders/"+order.ID+"/status", customerID, "", map[string]any{
			"status": "confirmed",
		})
		require.Equal(t, http.StatusForbidden, st)

		st, body := doReq(t, ts.URL, "POST", "/orders/"+order.ID+"/status", adminID, "", map[string]any{
			"status": "confirmed",
			"note":   "paid on delivery",
		})
		require.Equal(t, http.StatusOK, st, string(body))

		// saltar de confirmed a delivered no está permitido
		st, _ = doReq(t, ts.URL, "POST", "/orders/"+order.ID+"/status", adminID, "", map[string]any{
			"status": "delivered",
		})
		require.Equal(t, http.StatusConflict, st)
	}

	// 9) El cliente ya no puede cancelar (no está pending)
	{
		st, _ := doReq(t, ts.URL, "POST", "/orders/"+order.ID+"/cancel", customerID, "", nil)
		require.Equal(t, http.StatusConflict, st)
	}

	// 10) Notificaciones: admin y cliente, como links wa.me (sin Cloud API)
	{
		st, _ := doReq(t, ts.URL, "GET", "/orders/"+order.ID+"/notifications", customerID, "", nil)
		require.Equal(t, http.StatusForbidden, st)

		st, body := doReq(t, ts.URL, "GET", "/orders/"+order.ID+"/notifications", adminID, "", nil)
		require.Equal(t, http.StatusOK, st, string(body))

		var notes []struct {
			Audience string `json:"audience"`
			Status   string `json:"status"`
			Payload  struct {
				Recipient string `json:"recipient"`
				Method    string `json:"method"`
				Link      string `json:"link"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(body, &notes))
		require.Len(t, notes, 2)
		for _, n := range notes {
			assert.Equal(t, "queued", n.Status)
			assert.Equal(t, "link", n.Payload.Method)
			assert.Contains(t, n.Payload.Link, "https://wa.me/")
		}
	}

	// 11) La suscripción quedó activa y el barrido genera el pedido de renovación
	{
		st, body := doReq(t, ts.URL, "GET", "/subscriptions", customerID, "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var subs []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(body, &subs))
		require.Len(t, subs, 1)
		assert.Equal(t, "active", subs[0].Status)
		assert.Equal(t, order.SubscriptionID, subs[0].ID)

		report, err := app.Subscriptions.RenewDue(context.Background(), time.Now().Add(8*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Renewed)

		st, body = doReq(t, ts.URL, "GET", "/orders", customerID, "", nil)
		require.Equal(t, http.StatusOK, st)
		var list []orderResp
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 2)
		assert.True(t, list[0].Renewal)
	}
}

func TestHTTP_RequiresAuth(t *testing.T) {
	_, ts := newTestApp(t)

	for _, path := range []string{"/me/profile", "/cats", "/orders", "/subscriptions"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", "", nil)
		assert.Equal(t, http.StatusUnauthorized, st, path)
	}
}

func TestHTTP_PublicEndpoints(t *testing.T) {
	_, ts := newTestApp(t)

	st, body := doReq(t, ts.URL, "GET", "/health", "", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, ts.URL, "GET", "/store", "", "", nil)
	require.Equal(t, http.StatusOK, st)
	var store struct {
		BrandName    string   `json:"brand_name"`
		Currency     string   `json:"currency"`
		CitiesServed []string `json:"cities_served"`
	}
	require.NoError(t, json.Unmarshal(body, &store))
	assert.Equal(t, config.DefaultBrandName, store.BrandName)
	assert.Equal(t, "EGP", store.Currency)
	assert.Equal(t, []string{"Cairo", "Giza"}, store.CitiesServed)

	st, body = doReq(t, ts.URL, "GET", "/plans", "", "", nil)
	require.Equal(t, http.StatusOK, st)
	var ps []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &ps))
	require.Len(t, ps, 2)
	assert.Equal(t, plans.WeeklyPlanID, ps[0].ID)

	st, body = doReq(t, ts.URL, "POST", "/nutrition/preview", "", "", map[string]any{
		"weight_kg":            4,
		"age_months":           24,
		"activity_level":       "normal",
		"neutered":             true,
		"body_condition_score": 5,
		"allergies":            []string{"chicken", "glitter"},
	})
	require.Equal(t, http.StatusOK, st, string(body))
	var preview struct {
		Requirements struct {
			DailyCalories int     `json:"daily_calories"`
			DailyGrams    float64 `json:"daily_grams"`
		} `json:"requirements"`
		MenuRotation          []string `json:"menu_rotation"`
		UnrecognizedAllergies []string `json:"unrecognized_allergies"`
	}
	require.NoError(t, json.Unmarshal(body, &preview))
	assert.Equal(t, 249, preview.Requirements.DailyCalories)
	assert.InDelta(t, 71.1, preview.Requirements.DailyGrams, 1e-9)
	assert.Len(t, preview.MenuRotation, 7)
	assert.Equal(t, []string{"glitter"}, preview.UnrecognizedAllergies)
}

func TestHTTP_PlansAdminOnly(t *testing.T) {
	_, ts := newTestApp(t)

	payload := map[string]any{
		"name":          "Trial",
		"description":   "3 days",
		"price":         200,
		"duration_days": 3,
	}

	st, _ := doReq(t, ts.URL, "POST", "/plans", customerID, "someone@example.com", payload)
	require.Equal(t, http.StatusForbidden, st)

	// el rol se asigna al crear el perfil
	st, _ = doReq(t, ts.URL, "GET", "/me/profile", adminID, adminEmail, nil)
	require.Equal(t, http.StatusOK, st)

	st, body := doReq(t, ts.URL, "POST", "/plans", adminID, adminEmail, payload)
	require.Equal(t, http.StatusCreated, st, string(body))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	st, _ = doReq(t, ts.URL, "POST", "/plans/"+created.ID+"/deactivate", adminID, "", nil)
	require.Equal(t, http.StatusOK, st)

	st, body = doReq(t, ts.URL, "GET", "/plans", "", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.NotContains(t, string(body), created.ID)
}

type orderResp struct {
	ID               string  `json:"id"`
	PlanName         string  `json:"plan_name"`
	SubscriptionID   string  `json:"subscription_id"`
	Renewal          bool    `json:"renewal"`
	Status           string  `json:"status"`
	TotalPrice       float64 `json:"total_price"`
	NutritionSummary struct {
		TotalDailyCalories int     `json:"total_daily_calories"`
		TotalDailyGrams    float64 `json:"total_daily_grams"`
		CatsCount          int     `json:"cats_count"`
	} `json:"nutrition_summary"`
	Items []struct {
		CatID        string   `json:"cat_id"`
		MenuRotation []string `json:"menu_rotation"`
	} `json:"items"`
	History []struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"history"`
}

func createCat(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/cats", userID, "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create cat, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create cat: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugEmail string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugEmail != "" {
		req.Header.Set("X-Debug-User-Email", debugEmail)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func TestHTTP_MenuDaysCapped(t *testing.T) {
	_, ts := newTestApp(t)

	preview := map[string]any{
		"weight_kg":            4,
		"age_months":           24,
		"activity_level":       "normal",
		"neutered":             true,
		"body_condition_score": 5,
	}

	for _, days := range []int64{-1, 366, 1152921504606846976} {
		preview["days"] = days
		st, body := doReq(t, ts.URL, "POST", "/nutrition/preview", "", "", preview)
		assert.Equal(t, http.StatusBadRequest, st, "days=%d body=%s", days, body)
	}

	preview["days"] = 365
	st, body := doReq(t, ts.URL, "POST", "/nutrition/preview", "", "", preview)
	require.Equal(t, http.StatusOK, st, string(body))

	catID := createCat(t, ts.URL, customerID, map[string]any{
		"name":                 "Simsim",
		"sex":                  "male",
		"age_months":           36,
		"weight_kg":            5,
		"neutered":             true,
		"activity_level":       "normal",
		"body_condition_score": 5,
	})

	st, _ = doReq(t, ts.URL, "GET", "/cats/"+catID+"/nutrition?days=366", customerID, "", nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, ts.URL, "GET", "/cats/"+catID+"/nutrition?days=1000000000", customerID, "", nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, ts.URL, "GET", "/cats/"+catID+"/nutrition?days=30", customerID, "", nil)
	assert.Equal(t, http.StatusOK, st)
}
