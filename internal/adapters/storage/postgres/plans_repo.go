package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/plans"
)

type PlanRepo struct {
	db *sqlx.DB
}

func NewPlanRepo(db *sqlx.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

type planRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        float64   `db:"price"`
	Currency     string    `db:"currency"`
	DurationDays int       `db:"duration_days"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const planColumns = `id, name, description, price, currency, duration_days, active, created_at, updated_at`

func (r *PlanRepo) Create(ctx context.Context, p plans.Plan) error {
	const q = `
INSERT INTO plans (` + planColumns + `)
VALUES (:id, :name, :description, :price, :currency, :duration_days, :active, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, q, planRow(p))
	return err
}

func (r *PlanRepo) Update(ctx context.Context, p plans.Plan) error {
	const q = `
UPDATE plans SET
  name = :name,
  description = :description,
  price = :price,
  currency = :currency,
  duration_days = :duration_days,
  active = :active,
  updated_at = :updated_at
WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, planRow(p))
	if err != nil {
		return err
	}
	return requireAffected(res, plans.ErrNotFound)
}

func (r *PlanRepo) GetByID(ctx context.Context, id string) (plans.Plan, error) {
	var row planRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id); err != nil {
		if isNoRows(err) {
			return plans.Plan{}, plans.ErrNotFound
		}
		return plans.Plan{}, err
	}
	return plans.Plan(row), nil
}

func (r *PlanRepo) List(ctx context.Context) ([]plans.Plan, error) {
	var rows []planRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+planColumns+` FROM plans ORDER BY price ASC`); err != nil {
		return nil, err
	}

	out := make([]plans.Plan, 0, len(rows))
	for _, row := range rows {
		out = append(out, plans.Plan(row))
	}
	return out, nil
}
