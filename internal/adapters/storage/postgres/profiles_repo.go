package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/profiles"
)

type ProfileRepo struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

type profileRow struct {
	UserID    string    `db:"user_id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	City      string    `db:"city"`
	Address   string    `db:"address"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	const q = `
SELECT user_id, full_name, email, phone, city, address, role, created_at, updated_at
FROM profiles
WHERE user_id = $1`

	var row profileRow
	if err := r.db.GetContext(ctx, &row, q, userID); err != nil {
		if isNoRows(err) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return row.toDomain(), nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	const q = `
INSERT INTO profiles (user_id, full_name, email, phone, city, address, role, created_at, updated_at)
VALUES (:user_id, :full_name, :email, :phone, :city, :address, :role, :created_at, :updated_at)
ON CONFLICT (user_id) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  email = EXCLUDED.email,
  phone = EXCLUDED.phone,
  city = EXCLUDED.city,
  address = EXCLUDED.address,
  role = EXCLUDED.role,
  updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, q, profileRow{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		City:      p.City,
		Address:   p.Address,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	return err
}

func (row profileRow) toDomain() profiles.Profile {
	return profiles.Profile{
		UserID:    row.UserID,
		FullName:  row.FullName,
		Email:     row.Email,
		Phone:     row.Phone,
		City:      row.City,
		Address:   row.Address,
		Role:      profiles.Role(row.Role),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
