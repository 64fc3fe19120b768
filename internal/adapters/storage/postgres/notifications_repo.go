package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/notifications"
)

type NotificationRepo struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

type notificationRow struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	Type      string    `db:"type"`
	Audience  string    `db:"audience"`
	Status    string    `db:"status"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *NotificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	const q = `
INSERT INTO notifications (id, order_id, type, audience, status, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`

	_, err = r.db.ExecContext(ctx, q,
		n.ID, n.OrderID, string(n.Channel), string(n.Audience), string(n.Status), string(payload), n.CreatedAt)
	return err
}

func (r *NotificationRepo) ListByOrder(ctx context.Context, orderID string) ([]notifications.Notification, error) {
	const q = `
SELECT id, order_id, type, audience, status, payload, created_at
FROM notifications
WHERE order_id = $1
ORDER BY created_at ASC, id ASC`

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, q, orderID); err != nil {
		return nil, err
	}

	out := make([]notifications.Notification, 0, len(rows))
	for _, row := range rows {
		var p notifications.Payload
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &p); err != nil {
				return nil, fmt.Errorf("unmarshal notification payload: %w", err)
			}
		}
		out = append(out, notifications.Notification{
			ID:        row.ID,
			OrderID:   row.OrderID,
			Channel:   notifications.Channel(row.Type),
			Audience:  notifications.Audience(row.Audience),
			Status:    notifications.Status(row.Status),
			Payload:   p,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
