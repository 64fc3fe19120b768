package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/cats"
	"catbox/internal/domain/nutrition"
)

type CatRepo struct {
	db *sqlx.DB
}

func NewCatRepo(db *sqlx.DB) *CatRepo {
	return &CatRepo{db: db}
}

type catRow struct {
	ID                  string    `db:"id"`
	OwnerUserID         string    `db:"owner_user_id"`
	Name                string    `db:"name"`
	Sex                 string    `db:"sex"`
	Breed               string    `db:"breed"`
	AgeMonths           int       `db:"age_months"`
	WeightKg            float64   `db:"weight_kg"`
	Neutered            bool      `db:"neutered"`
	ActivityLevel       string    `db:"activity_level"`
	BodyConditionScore  int       `db:"body_condition_score"`
	Allergies           jsonList  `db:"allergies"`
	HealthIssues        jsonList  `db:"health_issues"`
	DislikedIngredients jsonList  `db:"disliked_ingredients"`
	FoodWet             bool      `db:"food_wet"`
	FoodDry             bool      `db:"food_dry"`
	FoodRaw             bool      `db:"food_raw"`
	FeedingTimesPerDay  int       `db:"feeding_times_per_day"`
	Notes               string    `db:"notes"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

const catColumns = `id, owner_user_id, name, sex, breed, age_months, weight_kg, neutered,
  activity_level, body_condition_score, allergies, health_issues, disliked_ingredients,
  food_wet, food_dry, food_raw, feeding_times_per_day, notes, created_at, updated_at`

func (r *CatRepo) Create(ctx context.Context, c cats.Cat) error {
	const q = `
INSERT INTO cats (` + catColumns + `)
VALUES (:id, :owner_user_id, :name, :sex, :breed, :age_months, :weight_kg, :neutered,
  :activity_level, :body_condition_score, :allergies, :health_issues, :disliked_ingredients,
  :food_wet, :food_dry, :food_raw, :feeding_times_per_day, :notes, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, q, catToRow(c))
	return err
}

func (r *CatRepo) Update(ctx context.Context, c cats.Cat) error {
	const q = `
UPDATE cats SET
  name = :name,
  sex = :sex,
  breed = :breed,
  age_months = :age_months,
  weight_kg = :weight_kg,
  neutered = :neutered,
  activity_level = :activity_level,
  body_condition_score = :body_condition_score,
  allergies = :allergies,
  health_issues = :health_issues,
  disliked_ingredients = :disliked_ingredients,
  food_wet = :food_wet,
  food_dry = :food_dry,
  food_raw = :food_raw,
  feeding_times_per_day = :feeding_times_per_day,
  notes = :notes,
  updated_at = :updated_at
WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, q, catToRow(c))
	if err != nil {
		return err
	}
	return requireAffected(res, cats.ErrNotFound)
}

func (r *CatRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, cats.ErrNotFound)
}

func (r *CatRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	var row catRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+catColumns+` FROM cats WHERE id = $1`, id); err != nil {
		if isNoRows(err) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return row.toDomain(), nil
}

func (r *CatRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	const q = `SELECT ` + catColumns + `
FROM cats
WHERE owner_user_id = $1
ORDER BY created_at ASC, id ASC`

	var rows []catRow
	if err := r.db.SelectContext(ctx, &rows, q, ownerUserID); err != nil {
		return nil, err
	}

	out := make([]cats.Cat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func catToRow(c cats.Cat) catRow {
	return catRow{
		ID:                  c.ID,
		OwnerUserID:         c.OwnerUserID,
		Name:                c.Name,
		Sex:                 string(c.Sex),
		Breed:               c.Breed,
		AgeMonths:           c.AgeMonths,
		WeightKg:            c.WeightKg,
		Neutered:            c.Neutered,
		ActivityLevel:       string(c.ActivityLevel),
		BodyConditionScore:  c.BodyConditionScore,
		Allergies:           jsonList(c.Allergies),
		HealthIssues:        jsonList(c.HealthIssues),
		DislikedIngredients: jsonList(c.DislikedIngredients),
		FoodWet:             c.FoodPreferences.Wet,
		FoodDry:             c.FoodPreferences.Dry,
		FoodRaw:             c.FoodPreferences.Raw,
		FeedingTimesPerDay:  c.FeedingTimesPerDay,
		Notes:               c.Notes,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (row catRow) toDomain() cats.Cat {
	return cats.Cat{
		ID:                  row.ID,
		OwnerUserID:         row.OwnerUserID,
		Name:                row.Name,
		Sex:                 cats.Sex(row.Sex),
		Breed:               row.Breed,
		AgeMonths:           row.AgeMonths,
		WeightKg:            row.WeightKg,
		Neutered:            row.Neutered,
		ActivityLevel:       nutrition.ActivityLevel(row.ActivityLevel),
		BodyConditionScore:  row.BodyConditionScore,
		Allergies:           []string(row.Allergies),
		HealthIssues:        []string(row.HealthIssues),
		DislikedIngredients: []string(row.DislikedIngredients),
		FoodPreferences: nutrition.FoodPreferences{
			Wet: row.FoodWet,
			Dry: row.FoodDry,
			Raw: row.FoodRaw,
		},
		FeedingTimesPerDay: row.FeedingTimesPerDay,
		Notes:              row.Notes,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
