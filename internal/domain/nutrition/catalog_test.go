package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ParseHealthIssues(t *testing.T) {
	c := English()

	got, unknown := c.ParseHealthIssues([]string{
		"  Diabetes ",
		"kidney_disease",
		"CKD",
		"diabetic",
		"kidney stones",
		"",
	})

	assert.Equal(t, []HealthIssue{HealthDiabetes, HealthKidneyDisease}, got)
	assert.Equal(t, []string{"kidney stones"}, unknown)
}

func TestCatalog_ParseHealthIssues_NoSubstringMatching(t *testing.T) {
	// "pre-diabetes" ya no dispara el ajuste de diabetes.
	got, unknown := English().ParseHealthIssues([]string{"pre-diabetes"})
	assert.Empty(t, got)
	assert.Equal(t, []string{"pre-diabetes"}, unknown)
}

func TestCatalog_ParseAllergies_Aliases(t *testing.T) {
	got, unknown := English().ParseAllergies([]string{"Fish", "salmon", "dairy"})
	assert.Equal(t, []Protein{ProteinSalmon, ProteinTuna}, got)
	assert.Equal(t, []string{"dairy"}, unknown)
}

func TestCatalog_ArabicLabels(t *testing.T) {
	c, ok := CatalogFor("AR")
	require.True(t, ok)

	issues, unknown := c.ParseHealthIssues([]string{"مرض السكري", "أمراض الكلى"})
	assert.Empty(t, unknown)
	assert.Equal(t, []HealthIssue{HealthDiabetes, HealthKidneyDisease}, issues)

	allergies, _ := c.ParseAllergies([]string{"سمك"})
	assert.ElementsMatch(t, []Protein{ProteinSalmon, ProteinTuna}, allergies)
}

func TestCatalogFor_Unknown(t *testing.T) {
	_, ok := CatalogFor("fr")
	assert.False(t, ok)

	c, ok := CatalogFor("")
	require.True(t, ok)
	assert.Equal(t, LocaleEnglish, c.Locale)
}

func TestValidateProfile(t *testing.T) {
	ok := adultCat()
	require.NoError(t, ValidateProfile(ok))

	bad := []func(p *Profile){
		func(p *Profile) { p.WeightKg = 0 },
		func(p *Profile) { p.WeightKg = 15.5 },
		func(p *Profile) { p.AgeMonths = -1 },
		func(p *Profile) { p.AgeMonths = 301 },
		func(p *Profile) { p.BodyConditionScore = 0 },
		func(p *Profile) { p.BodyConditionScore = 10 },
		func(p *Profile) { p.Activity = "sleepy" },
		func(p *Profile) { p.FeedingTimesPerDay = 7 },
		func(p *Profile) { p.HealthIssues = []HealthIssue{"fleas"} },
	}
	for i, mod := range bad {
		p := adultCat()
		mod(&p)
		assert.ErrorIs(t, ValidateProfile(p), ErrInvalidProfile, "case %d", i)
	}
}

func TestCatalog_ParseAllergies_AnyCatalogAndSubstring(t *testing.T) {
	c := Default().Catalog()

	tests := []struct {
		label string
		want  []Protein
	}{
		{"سمك السلمون", []Protein{ProteinSalmon}},
		{"salmon oil", []Protein{ProteinSalmon}},
		{"Salmon allergy", []Protein{ProteinSalmon}},
		{"تونة", []Protein{ProteinTuna}},
		{"turk", []Protein{ProteinTurkey}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, unknown := c.ParseAllergies([]string{tt.label})
			assert.Empty(t, unknown)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_ParseAllergies_ShortLabelsDoNotMatchInside(t *testing.T) {
	got, unknown := English().ParseAllergies([]string{"be"})
	assert.Empty(t, got)
	assert.Equal(t, []string{"be"}, unknown)
}
