package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCmd_Flags(t *testing.T) {
	out, err := runCmd(t, "plan", "--name", "Mishmish", "--weight", "4", "--age", "24", "--neutered", "--allergies", "chicken,glitter")
	require.NoError(t, err)

	var got struct {
		Name         string `json:"name"`
		Requirements struct {
			DailyCalories int     `json:"daily_calories"`
			DailyGrams    float64 `json:"daily_grams"`
		} `json:"requirements"`
		MenuRotation          []string `json:"menu_rotation"`
		UnrecognizedAllergies []string `json:"unrecognized_allergies"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Mishmish", got.Name)
	assert.Equal(t, 249, got.Requirements.DailyCalories)
	assert.InDelta(t, 71.1, got.Requirements.DailyGrams, 1e-9)
	assert.Len(t, got.MenuRotation, 7)
	for _, m := range got.MenuRotation {
		assert.NotContains(t, m, "chicken")
	}
	assert.Equal(t, []string{"glitter"}, got.UnrecognizedAllergies)
}

func TestPlanCmd_RejectsOutOfRange(t *testing.T) {
	_, err := runCmd(t, "plan", "--weight", "40", "--age", "24")
	assert.Error(t, err)

	_, err = runCmd(t, "plan", "--weight", "4", "--locale", "fr")
	assert.Error(t, err)
}

func TestBatchCmd_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cats:
  - name: Mishmish
    weight_kg: 4
    age_months: 24
    neutered: true
  - name: Simsim
    weight_kg: 5
    age_months: 96
    neutered: true
    activity_level: normal
`), 0o600))

	out, err := runCmd(t, "batch", "-f", path, "--days", "30")
	require.NoError(t, err)

	var got struct {
		Cats []struct {
			Name         string   `json:"name"`
			MenuRotation []string `json:"menu_rotation"`
		} `json:"cats"`
		TotalDailyCalories int     `json:"total_daily_calories"`
		TotalDailyGrams    float64 `json:"total_daily_grams"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Cats, 2)
	assert.Equal(t, "Simsim", got.Cats[1].Name)
	assert.Len(t, got.Cats[0].MenuRotation, 30)
	assert.Equal(t, 529, got.TotalDailyCalories)
	assert.InDelta(t, 151.1, got.TotalDailyGrams, 1e-9)
}

func TestBatchCmd_RequiresFile(t *testing.T) {
	_, err := runCmd(t, "batch")
	assert.Error(t, err)
}
