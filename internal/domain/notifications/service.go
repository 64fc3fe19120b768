package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"catbox/internal/domain/orders"
	"catbox/internal/platform/logger"
	"catbox/internal/platform/phone"
)

var ErrNoRecipient = errors.New("no recipient phone")

type Settings struct {
	BrandName     string
	AdminWhatsApp string // E.164; vacío = no se avisa al admin
	BaseURL       string
	CitiesServed  []string
	Locale        string
	Location      *time.Location // para la fecha del mensaje; default UTC
}

type Service struct {
	repo     Repository
	sender   Sender // nil => link click-to-chat
	settings Settings
	tpl      Templates
	loc      *time.Location
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, sender Sender, settings Settings, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		sender:   sender,
		settings: settings,
		tpl:      TemplatesFor(settings.Locale),
		loc:      loc,
		log:      log.With(map[string]any{"component": "notifications"}),
		now:      time.Now,
	}
}

// OrderCreated implementa orders.Notifier: un mensaje al admin y otro al cliente.
// Cada intento queda registrado; el error agrupa los envíos fallidos.
func (s *Service) OrderCreated(ctx context.Context, o orders.Order) error {
	var errs []error

	if strings.TrimSpace(s.settings.AdminWhatsApp) == "" {
		s.log.Warn("admin whatsapp not configured, skipping admin notification", map[string]any{"order_id": o.ID})
	} else if _, err := s.Deliver(ctx, o.ID, AudienceAdmin, s.settings.AdminWhatsApp, s.adminMessage(o)); err != nil {
		errs = append(errs, fmt.Errorf("admin: %w", err))
	}

	if _, err := s.Deliver(ctx, o.ID, AudienceCustomer, o.Phone, s.customerMessage(o)); err != nil {
		errs = append(errs, fmt.Errorf("customer: %w", err))
	}

	return errors.Join(errs...)
}

// Deliver intenta Cloud API si hay sender; si no, genera el link wa.me y queda queued.
func (s *Service) Deliver(ctx context.Context, orderID string, audience Audience, to, message string) (Notification, error) {
	if phone.Digits(to) == "" {
		return Notification{}, ErrNoRecipient
	}

	n := Notification{
		ID:       uuid.NewString(),
		OrderID:  orderID,
		Channel:  ChannelWhatsApp,
		Audience: audience,
		Payload: Payload{
			Recipient: phone.FormatE164(to),
			Message:   message,
		},
		CreatedAt: s.now(),
	}

	var sendErr error
	if s.sender != nil {
		n.Payload.Method = MethodAPI
		id, err := s.sender.SendText(ctx, n.Payload.Recipient, message)
		if err != nil {
			sendErr = err
			n.Status = StatusFailed
			n.Payload.Error = err.Error()
		} else {
			n.Status = StatusSent
			n.Payload.MessageID = id
		}
	} else {
		n.Payload.Method = MethodLink
		n.Payload.Link = phone.ClickToChatLink(n.Payload.Recipient, message)
		n.Status = StatusQueued
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, errors.Join(sendErr, fmt.Errorf("store notification: %w", err))
	}

	s.log.Info("notification recorded", map[string]any{
		"order_id": orderID,
		"audience": string(audience),
		"method":   string(n.Payload.Method),
		"status":   string(n.Status),
	})
	return n, sendErr
}

func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]Notification, error) {
	return s.repo.ListByOrder(ctx, orderID)
}
