package notifications

import "time"

// Status del envío.
// @Enum queued, sent, failed
type Status string

const (
	StatusQueued Status = "queued" // link generado, falta que alguien lo abra
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
)

type Audience string

const (
	AudienceAdmin    Audience = "admin"
	AudienceCustomer Audience = "customer"
)

// Method de entrega: Cloud API o link click-to-chat.
type Method string

const (
	MethodAPI  Method = "api"
	MethodLink Method = "link"
)

// Payload se guarda como JSON junto a la notificación.
type Payload struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Method    Method `json:"method"`
	MessageID string `json:"message_id,omitempty"`
	Link      string `json:"link,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Notification struct {
	ID        string
	OrderID   string
	Channel   Channel
	Audience  Audience
	Status    Status
	Payload   Payload
	CreatedAt time.Time
}
