package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/subscriptions"
)

type SubscriptionRepo struct {
	db *sqlx.DB
}

func NewSubscriptionRepo(db *sqlx.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

type subscriptionRow struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	PlanID          string    `db:"plan_id"`
	Status          string    `db:"status"`
	StartDate       time.Time `db:"start_date"`
	NextRenewalDate time.Time `db:"next_renewal_date"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const subscriptionColumns = `id, user_id, plan_id, status, start_date, next_renewal_date, created_at, updated_at`

func (r *SubscriptionRepo) Create(ctx context.Context, s subscriptions.Subscription) error {
	const q = `
INSERT INTO subscriptions (` + subscriptionColumns + `)
VALUES (:id, :user_id, :plan_id, :status, :start_date, :next_renewal_date, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, q, subscriptionToRow(s))
	return err
}

func (r *SubscriptionRepo) Update(ctx context.Context, s subscriptions.Subscription) error {
	const q = `
UPDATE subscriptions SET
  plan_id = :plan_id,
  status = :status,
  next_renewal_date = :next_renewal_date,
  updated_at = :updated_at
WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, subscriptionToRow(s))
	if err != nil {
		return err
	}
	return requireAffected(res, subscriptions.ErrNotFound)
}

// AdvanceRenewal condiciona por status (optimistic lock), como OrderRepo.UpdateStatus.
func (r *SubscriptionRepo) AdvanceRenewal(ctx context.Context, id string, next, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET next_renewal_date = $1, updated_at = $2 WHERE id = $3 AND status = 'active'`,
		next, updatedAt, id)
	if err != nil {
		return fmt.Errorf("advance renewal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE id = $1)`, id); err != nil {
		return err
	}
	if !exists {
		return subscriptions.ErrNotFound
	}
	return subscriptions.ErrBadState
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (subscriptions.Subscription, error) {
	var row subscriptionRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id); err != nil {
		if isNoRows(err) {
			return subscriptions.Subscription{}, subscriptions.ErrNotFound
		}
		return subscriptions.Subscription{}, err
	}
	return row.toDomain(), nil
}

func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]subscriptions.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + `
FROM subscriptions
WHERE user_id = $1
ORDER BY created_at DESC`

	return r.list(ctx, q, userID)
}

func (r *SubscriptionRepo) ListDue(ctx context.Context, at time.Time) ([]subscriptions.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + `
FROM subscriptions
WHERE status = 'active' AND next_renewal_date <= $1
ORDER BY next_renewal_date ASC`

	return r.list(ctx, q, at)
}

func (r *SubscriptionRepo) list(ctx context.Context, q string, arg any) ([]subscriptions.Subscription, error) {
	var rows []subscriptionRow
	if err := r.db.SelectContext(ctx, &rows, q, arg); err != nil {
		return nil, err
	}

	out := make([]subscriptions.Subscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func subscriptionToRow(s subscriptions.Subscription) subscriptionRow {
	return subscriptionRow{
		ID:              s.ID,
		UserID:          s.UserID,
		PlanID:          s.PlanID,
		Status:          string(s.Status),
		StartDate:       s.StartDate,
		NextRenewalDate: s.NextRenewalDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (row subscriptionRow) toDomain() subscriptions.Subscription {
	return subscriptions.Subscription{
		ID:              row.ID,
		UserID:          row.UserID,
		PlanID:          row.PlanID,
		Status:          subscriptions.Status(row.Status),
		StartDate:       row.StartDate,
		NextRenewalDate: row.NextRenewalDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
