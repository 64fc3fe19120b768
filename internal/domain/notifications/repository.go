package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	ListByOrder(ctx context.Context, orderID string) ([]Notification, error)
}

// Sender entrega un mensaje de texto. Lo implementa el adapter de WhatsApp Cloud API.
type Sender interface {
	SendText(ctx context.Context, to, body string) (messageID string, err error)
}
