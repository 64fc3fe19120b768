package notifications

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catbox/internal/domain/orders"
	"catbox/internal/platform/logger"
)

type testRepo struct {
	items   []Notification
	failErr error
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.items = append(r.items, n)
	return nil
}

func (r *testRepo) ListByOrder(ctx context.Context, orderID string) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.items {
		if n.OrderID == orderID {
			out = append(out, n)
		}
	}
	return out, nil
}

type stubSender struct {
	to   []string
	fail map[string]bool
}

func (s *stubSender) SendText(ctx context.Context, to, body string) (string, error) {
	s.to = append(s.to, to)
	if s.fail[to] {
		return "", errors.New("recipient not on whatsapp")
	}
	return "wamid." + strings.TrimPrefix(to, "+"), nil
}

func sampleOrder() orders.Order {
	return orders.Order{
		ID:           "ord-1",
		CustomerName: "Mona Ali",
		Phone:        "+201012345678",
		City:         "Cairo",
		PlanName:     "Monthly",
		Total:        1600,
		Currency:     "EGP",
		Summary:      orders.NutritionSummary{CatCount: 2},
		CreatedAt:    time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func settings() Settings {
	return Settings{
		BrandName:     "Catbox",
		AdminWhatsApp: "+201099999999",
		BaseURL:       "https://catbox.example/",
		CitiesServed:  []string{"Cairo", "Giza"},
	}
}

func TestOrderCreated_LinkFallback(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil, settings(), logger.Nop())

	require.NoError(t, svc.OrderCreated(context.Background(), sampleOrder()))
	require.Len(t, repo.items, 2)

	admin := repo.items[0]
	assert.Equal(t, AudienceAdmin, admin.Audience)
	assert.Equal(t, StatusQueued, admin.Status)
	assert.Equal(t, MethodLink, admin.Payload.Method)
	assert.Equal(t, "+201099999999", admin.Payload.Recipient)
	require.True(t, strings.HasPrefix(admin.Payload.Link, "https://wa.me/201099999999?text="))

	u, err := url.Parse(admin.Payload.Link)
	require.NoError(t, err)
	assert.Equal(t, admin.Payload.Message, u.Query().Get("text"))

	msg := admin.Payload.Message
	for _, want := range []string{"#ord-1", "Mona Ali", "+201012345678", "Cairo", "Monthly", "Cats: 2", "1600 EGP",
		"https://catbox.example/admin/orders/ord-1", "2025-03-01 10:30:00"} {
		assert.Contains(t, msg, want)
	}

	customer := repo.items[1]
	assert.Equal(t, AudienceCustomer, customer.Audience)
	assert.Contains(t, customer.Payload.Message, "Hi Mona Ali!")
	assert.Contains(t, customer.Payload.Message, "Free delivery in Cairo and Giza")
	assert.Contains(t, customer.Payload.Message, "Thank you for trusting Catbox!")
}

func TestOrderCreated_CloudAPI(t *testing.T) {
	repo := &testRepo{}
	sender := &stubSender{fail: map[string]bool{"+201012345678": true}}
	svc := NewService(repo, sender, settings(), logger.Nop())

	err := svc.OrderCreated(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer")

	require.Len(t, repo.items, 2)
	assert.Equal(t, StatusSent, repo.items[0].Status)
	assert.Equal(t, "wamid.201099999999", repo.items[0].Payload.MessageID)
	assert.Equal(t, MethodAPI, repo.items[0].Payload.Method)

	assert.Equal(t, StatusFailed, repo.items[1].Status)
	assert.Equal(t, "recipient not on whatsapp", repo.items[1].Payload.Error)
}

func TestOrderCreated_NoAdminNumber(t *testing.T) {
	repo := &testRepo{}
	st := settings()
	st.AdminWhatsApp = ""
	svc := NewService(repo, nil, st, logger.Nop())

	require.NoError(t, svc.OrderCreated(context.Background(), sampleOrder()))
	require.Len(t, repo.items, 1)
	assert.Equal(t, AudienceCustomer, repo.items[0].Audience)
}

func TestDeliver_Errors(t *testing.T) {
	svc := NewService(&testRepo{failErr: errors.New("db down")}, nil, settings(), logger.Nop())

	_, err := svc.Deliver(context.Background(), "o", AudienceCustomer, " ", "hi")
	assert.ErrorIs(t, err, ErrNoRecipient)

	_, err = svc.Deliver(context.Background(), "o", AudienceCustomer, "01012345678", "hi")
	assert.ErrorContains(t, err, "store notification")
}

func TestArabicTemplates(t *testing.T) {
	repo := &testRepo{}
	st := settings()
	st.Locale = "ar"
	st.CitiesServed = []string{"القاهرة", "الجيزة"}
	svc := NewService(repo, nil, st, logger.Nop())

	require.NoError(t, svc.OrderCreated(context.Background(), sampleOrder()))
	assert.Contains(t, repo.items[0].Payload.Message, "طلب جديد #ord-1")
	assert.Contains(t, repo.items[1].Payload.Message, "التوصيل مجاني في القاهرة والجيزة")
}
