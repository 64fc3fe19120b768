package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"catbox/internal/domain/nutrition"
)

type rootOptions struct {
	locale  string
	density float64
	days    int
}

// catInput es el formato del YAML: labels libres, igual que el formulario web.
type catInput struct {
	Name               string                    `yaml:"name"`
	WeightKg           float64                   `yaml:"weight_kg"`
	AgeMonths          int                       `yaml:"age_months"`
	ActivityLevel      nutrition.ActivityLevel   `yaml:"activity_level"`
	Neutered           bool                      `yaml:"neutered"`
	BodyConditionScore int                       `yaml:"body_condition_score"`
	HealthIssues       []string                  `yaml:"health_issues"`
	Allergies          []string                  `yaml:"allergies"`
	FeedingTimesPerDay int                       `yaml:"feeding_times_per_day"`
	FoodPreferences    nutrition.FoodPreferences `yaml:"food_preferences"`
}

type batchFile struct {
	Cats []catInput `yaml:"cats"`
}

type catPlan struct {
	Name string `json:"name,omitempty"`
	nutrition.PreviewResponse
}

type batchOutput struct {
	Cats               []catPlan `json:"cats"`
	TotalDailyCalories int       `json:"total_daily_calories"`
	TotalDailyGrams    float64   `json:"total_daily_grams"`
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "nutrition",
		Short:         "Calcula requerimientos diarios y menús para gatos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.locale, "locale", nutrition.LocaleEnglish, "catálogo de textos (en, ar)")
	root.PersistentFlags().Float64Var(&opts.density, "density", nutrition.DefaultCaloricDensity, "kcal por 100g de comida")
	root.PersistentFlags().IntVar(&opts.days, "days", nutrition.DefaultMenuDays, "días de menú")

	root.AddCommand(newPlanCmd(opts), newBatchCmd(opts))
	return root
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		in   catInput
		file string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan para un gato (flags o YAML con -f)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				if err := readYAML(file, &in); err != nil {
					return err
				}
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			out, err := previewFor(cmd.Context(), engine, in, opts.days)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), catPlan{Name: in.Name, PreviewResponse: out})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML con el perfil del gato")
	f.StringVar(&in.Name, "name", "", "nombre del gato")
	f.Float64Var(&in.WeightKg, "weight", 0, "peso en kg")
	f.IntVar(&in.AgeMonths, "age", 0, "edad en meses")
	f.StringVar((*string)(&in.ActivityLevel), "activity", string(nutrition.ActivityNormal), "low, normal o high")
	f.BoolVar(&in.Neutered, "neutered", false, "castrado/esterilizado")
	f.IntVar(&in.BodyConditionScore, "bcs", 5, "body condition score (1-9)")
	f.StringSliceVar(&in.HealthIssues, "health", nil, "problemas de salud (texto libre)")
	f.StringSliceVar(&in.Allergies, "allergies", nil, "alergias (texto libre)")
	f.IntVar(&in.FeedingTimesPerDay, "meals", 0, "comidas por día (0 = default)")
	return cmd
}

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Planes para varios gatos de un YAML (cats: [...]) con totales del hogar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var bf batchFile
			if err := readYAML(file, &bf); err != nil {
				return err
			}
			if len(bf.Cats) == 0 {
				return fmt.Errorf("%s: no cats", file)
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			out := batchOutput{Cats: make([]catPlan, 0, len(bf.Cats))}
			for _, c := range bf.Cats {
				p, err := previewFor(cmd.Context(), engine, c, opts.days)
				if err != nil {
					return fmt.Errorf("cat %q: %w", c.Name, err)
				}
				out.Cats = append(out.Cats, catPlan{Name: c.Name, PreviewResponse: p})
				out.TotalDailyCalories += p.Requirements.DailyCalories
				out.TotalDailyGrams += p.Requirements.DailyGrams
			}
			out.TotalDailyGrams = math.Round(out.TotalDailyGrams*10) / 10
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML con la lista de gatos")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *rootOptions) engine() (*nutrition.Engine, error) {
	catalog, ok := nutrition.CatalogFor(o.locale)
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", o.locale)
	}
	return nutrition.NewEngine(nutrition.Config{
		Catalog:               catalog,
		CaloricDensityPer100g: o.density,
	})
}

func previewFor(ctx context.Context, engine *nutrition.Engine, in catInput, days int) (nutrition.PreviewResponse, error) {
	cat := engine.Catalog()
	issues, unknownIssues := cat.ParseHealthIssues(in.HealthIssues)
	allergies, unknownAllergies := cat.ParseAllergies(in.Allergies)

	if in.ActivityLevel == "" {
		in.ActivityLevel = nutrition.ActivityNormal
	}
	if in.BodyConditionScore == 0 {
		in.BodyConditionScore = 5
	}

	p := nutrition.Profile{
		WeightKg:           in.WeightKg,
		AgeMonths:          in.AgeMonths,
		Activity:           in.ActivityLevel,
		Neutered:           in.Neutered,
		BodyConditionScore: in.BodyConditionScore,
		HealthIssues:       issues,
		Allergies:          allergies,
		FeedingTimesPerDay: in.FeedingTimesPerDay,
		FoodPreferences:    in.FoodPreferences,
	}
	if err := nutrition.ValidateProfile(p); err != nil {
		return nutrition.PreviewResponse{}, err
	}

	plans, err := engine.PlanBatch(ctx, []nutrition.Profile{p}, days)
	if err != nil {
		return nutrition.PreviewResponse{}, err
	}
	return nutrition.PreviewResponse{
		Plan:                     plans[0],
		UnrecognizedHealthIssues: unknownIssues,
		UnrecognizedAllergies:    unknownAllergies,
	}, nil
}

func readYAML(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
