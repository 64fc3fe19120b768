package nutrition

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ProteinLabel asocia un tag de proteína con su texto visible.
type ProteinLabel struct {
	Protein Protein
	Label   string
}

type AddOnTexts struct {
	Growth        string
	Senior        string
	Glucosamine   string
	Omega3        string
	Probiotic     string
	WeightControl string
	WeightGain    string
	BasicVitamins string
}

// TipTexts plantillas de consejos de alimentación.
// SplitMeals recibe %d (comidas por día); PerMeal recibe %s (gramos por comida).
type TipTexts struct {
	SplitMeals       string
	PerMeal          string
	FreshWater       string
	WeeklyWeighIn    string
	KittenMeals      string
	DiabetesInsulin  string
	IncreaseActivity string
}

// Catalog agrupa todo lo que depende del idioma/tenant: textos de salida y
// tablas de mapeo label -> tag para entradas de texto libre.
type Catalog struct {
	Locale string

	Proteins    []ProteinLabel // orden base de la rotación
	Styles      []string
	AllergySafe string

	HealthAliases  map[string]HealthIssue
	AllergyAliases map[string][]Protein

	AddOns AddOnTexts
	Tips   TipTexts
}

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

// CatalogFor devuelve el catálogo para un locale. ok=false si no existe.
func CatalogFor(locale string) (Catalog, bool) {
	switch normalizeLabel(locale) {
	case LocaleEnglish, "":
		return English(), true
	case LocaleArabic:
		return Arabic(), true
	default:
		return Catalog{}, false
	}
}

func English() Catalog {
	return Catalog{
		Locale: LocaleEnglish,
		Proteins: []ProteinLabel{
			{ProteinChicken, "chicken"},
			{ProteinSalmon, "salmon"},
			{ProteinBeef, "beef"},
			{ProteinTuna, "tuna"},
			{ProteinTurkey, "turkey"},
		},
		Styles:      []string{"fresh-cooked", "grilled", "boiled"},
		AllergySafe: "allergy-safe special food",
		HealthAliases: map[string]HealthIssue{
			"diabetes":          HealthDiabetes,
			"diabetic":          HealthDiabetes,
			"kidney disease":    HealthKidneyDisease,
			"kidney problems":   HealthKidneyDisease,
			"ckd":               HealthKidneyDisease,
			"joint problems":    HealthJointProblems,
			"arthritis":         HealthJointProblems,
			"skin allergy":      HealthSkinAllergy,
			"digestive issues":  HealthDigestiveIssues,
			"sensitive stomach": HealthDigestiveIssues,
		},
		AllergyAliases: map[string][]Protein{
			"fish":     {ProteinSalmon, ProteinTuna},
			"poultry":  {ProteinChicken, ProteinTurkey},
			"red meat": {ProteinBeef},
		},
		AddOns: AddOnTexts{
			Growth:        "growth supplements for kittens",
			Senior:        "senior cat supplements",
			Glucosamine:   "glucosamine supplements",
			Omega3:        "omega-3 for skin health",
			Probiotic:     "probiotics for digestion",
			WeightControl: "weight-control supplements",
			WeightGain:    "weight-gain supplements",
			BasicVitamins: "basic vitamins",
		},
		Tips: TipTexts{
			SplitMeals:       "Split the food into %d meals a day",
			PerMeal:          "Each meal is %s grams",
			FreshWater:       "Always provide fresh water",
			WeeklyWeighIn:    "Weigh your cat weekly",
			KittenMeals:      "Kittens need more frequent meals",
			DiabetesInsulin:  "Feed before insulin injections",
			IncreaseActivity: "Use interactive toys to increase activity",
		},
	}
}

// Arabic reproduce los textos de la tienda original.
func Arabic() Catalog {
	return Catalog{
		Locale: LocaleArabic,
		Proteins: []ProteinLabel{
			{ProteinChicken, "دجاج"},
			{ProteinSalmon, "سمك السلمون"},
			{ProteinBeef, "لحم بقري"},
			{ProteinTuna, "تونة"},
			{ProteinTurkey, "ديك رومي"},
		},
		Styles:      []string{"مطبوخ طازج", "مشوي", "مسلوق"},
		AllergySafe: "طعام خاص للحساسية",
		HealthAliases: map[string]HealthIssue{
			"مرض السكري":    HealthDiabetes,
			"أمراض الكلى":   HealthKidneyDisease,
			"مشاكل المفاصل": HealthJointProblems,
			"حساسية جلدية":  HealthSkinAllergy,
			"مشاكل هضمية":   HealthDigestiveIssues,
		},
		AllergyAliases: map[string][]Protein{
			"سمك":     {ProteinSalmon, ProteinTuna},
			"السلمون": {ProteinSalmon},
			"بقري":    {ProteinBeef},
		},
		AddOns: AddOnTexts{
			Growth:        "مكملات النمو للقطط الصغيرة",
			Senior:        "مكملات للقطط كبيرة السن",
			Glucosamine:   "مكملات الجلوكوزامين",
			Omega3:        "أوميجا 3 للصحة الجلدية",
			Probiotic:     "بروبيوتيك للهضم",
			WeightControl: "مكملات التحكم في الوزن",
			WeightGain:    "مكملات زيادة الوزن",
			BasicVitamins: "فيتامينات أساسية",
		},
		Tips: TipTexts{
			SplitMeals:       "قسم الطعام على %d وجبات يومياً",
			PerMeal:          "كل وجبة %s جرام",
			FreshWater:       "وفر مياه عذبة دائماً",
			WeeklyWeighIn:    "راقب وزن قطتك أسبوعياً",
			KittenMeals:      "القطط الصغيرة تحتاج وجبات أكثر تكراراً",
			DiabetesInsulin:  "اعط الطعام قبل حقن الأنسولين",
			IncreaseActivity: "استخدم ألعاب التفاعل لزيادة النشاط",
		},
	}
}

// ParseHealthIssues traduce labels libres a tags. Acepta el tag mismo
// ("kidney_disease") o cualquier alias del catálogo; match exacto tras normalizar.
// Los labels no reconocidos se devuelven aparte y no afectan el cálculo.
func (c Catalog) ParseHealthIssues(labels []string) ([]HealthIssue, []string) {
	known := map[string]HealthIssue{}
	for _, h := range healthIssueOrder {
		known[string(h)] = h
	}
	for k, v := range c.HealthAliases {
		known[normalizeLabel(k)] = v
	}

	seen := map[HealthIssue]struct{}{}
	out := make([]HealthIssue, 0, len(labels))
	var unknown []string

	for _, raw := range labels {
		key := normalizeLabel(raw)
		if key == "" {
			continue
		}
		h, ok := known[key]
		if !ok {
			unknown = append(unknown, strings.TrimSpace(raw))
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out, unknown
}

// ParseAllergies traduce labels de alergias a proteínas. Acepta el tag,
// el label visible de la proteína o un alias (p.ej. "fish" -> salmon + tuna)
// de cualquier catálogo, no solo el del locale configurado.
// Si no hay match exacto cae a substring en ambas direcciones ("salmon oil"
// excluye salmon): ante la duda se saca la proteína del menú.
func (c Catalog) ParseAllergies(labels []string) ([]Protein, []string) {
	known := allergyKeys(c)

	seen := map[Protein]struct{}{}
	out := make([]Protein, 0, len(labels))
	var unknown []string

	add := func(ps []Protein) {
		for _, p := range ps {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	for _, raw := range labels {
		key := normalizeLabel(raw)
		if key == "" {
			continue
		}
		if ps, ok := known[key]; ok {
			add(ps)
			continue
		}
		matched := false
		for _, k := range sortedKeys(known) {
			if strings.Contains(key, k) || (utf8.RuneCountInString(key) >= minAllergySubstring && strings.Contains(k, key)) {
				add(known[k])
				matched = true
			}
		}
		if !matched {
			unknown = append(unknown, strings.TrimSpace(raw))
		}
	}
	return out, unknown
}

// minAllergySubstring evita que "a" o "be" matcheen medio catálogo.
const minAllergySubstring = 3

// allergyKeys junta tags, labels y alias de todos los catálogos; c va
// último para que sus alias ganen ante una colisión.
func allergyKeys(c Catalog) map[string][]Protein {
	known := map[string][]Protein{}
	for _, cat := range []Catalog{English(), Arabic(), c} {
		for _, pl := range cat.Proteins {
			known[string(pl.Protein)] = []Protein{pl.Protein}
			known[normalizeLabel(pl.Label)] = []Protein{pl.Protein}
		}
		for k, v := range cat.AllergyAliases {
			known[normalizeLabel(k)] = v
		}
	}
	return known
}

func sortedKeys(m map[string][]Protein) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
