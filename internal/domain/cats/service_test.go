package cats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catbox/internal/domain/nutrition"
)

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Cat
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Cat{}} }

func (r *testRepo) Create(ctx context.Context, c Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cat, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo(), nutrition.Default())
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func luna() CreateInput {
	return CreateInput{
		Name:          "Luna",
		AgeMonths:     24,
		WeightKg:      4,
		Neutered:      true,
		ActivityLevel: nutrition.ActivityNormal,
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newTestService()
	c, err := svc.Create(context.Background(), "u1", luna())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, SexUnknown, c.Sex)
	assert.Equal(t, DefaultBodyConditionScore, c.BodyConditionScore)
	assert.Equal(t, "u1", c.OwnerUserID)
}

func TestCreate_RejectsOutOfRange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	in := luna()
	in.WeightKg = 0
	_, err := svc.Create(ctx, "u1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = luna()
	in.BodyConditionScore = 10
	_, err = svc.Create(ctx, "u1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = luna()
	in.Name = "  "
	_, err = svc.Create(ctx, "u1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "", luna())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_OwnerOnlyAndPartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", luna())
	require.NoError(t, err)

	w := 5.5
	updated, err := svc.Update(ctx, c.ID, "u1", UpdateInput{WeightKg: &w})
	require.NoError(t, err)
	assert.Equal(t, 5.5, updated.WeightKg)
	assert.Equal(t, "Luna", updated.Name)

	_, err = svc.Update(ctx, c.ID, "intruder", UpdateInput{WeightKg: &w})
	assert.ErrorIs(t, err, ErrForbidden)

	bad := 20.0
	_, err = svc.Update(ctx, c.ID, "u1", UpdateInput{WeightKg: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", "u1", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", luna())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID, "u2"), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, c.ID, "u1"))

	_, err = svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNutritionProfile_TranslatesLabels(t *testing.T) {
	svc := newTestService()
	in := luna()
	in.HealthIssues = []string{"Diabetes", "bad breath"}
	in.Allergies = []string{"fish"}

	c, err := svc.Create(context.Background(), "u1", in)
	require.NoError(t, err)

	p, unknownIssues, unknownAllergies := svc.NutritionProfile(c)
	assert.Equal(t, []nutrition.HealthIssue{nutrition.HealthDiabetes}, p.HealthIssues)
	assert.ElementsMatch(t, []nutrition.Protein{nutrition.ProteinSalmon, nutrition.ProteinTuna}, p.Allergies)
	assert.Equal(t, []string{"bad breath"}, unknownIssues)
	assert.Empty(t, unknownAllergies)
	require.NoError(t, nutrition.ValidateProfile(p))
}

func TestNutrition_PlanForOwnedCat(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "u1", luna())
	require.NoError(t, err)

	out, err := svc.Nutrition(ctx, c.ID, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 249, out.Requirements.DailyCalories)
	assert.Equal(t, 71.1, out.Requirements.DailyGrams)
	assert.Len(t, out.MenuRotation, 30)

	_, err = svc.Nutrition(ctx, c.ID, "u2", 7)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Nutrition(ctx, c.ID, "u1", -1)
	assert.ErrorIs(t, err, nutrition.ErrInvalidDays)
}
