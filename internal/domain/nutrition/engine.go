package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDensity = errors.New("caloric density must be positive")
	ErrInvalidDays    = errors.New("days out of range")
	ErrInvalidConfig  = errors.New("invalid nutrition config")
)

// DefaultCaloricDensity kcal por 100g de comida preparada.
const DefaultCaloricDensity = 350.0

// Config reemplaza los literales embebidos: catálogo localizable, densidad
// calórica del tenant y tabla de ajustes por condición de salud.
type Config struct {
	Catalog               Catalog
	CaloricDensityPer100g float64
	HealthAdjustments     map[HealthIssue]float64
}

func DefaultHealthAdjustments() map[HealthIssue]float64 {
	return map[HealthIssue]float64{
		HealthDiabetes:      0.9,
		HealthKidneyDisease: 0.95,
	}
}

func DefaultConfig() Config {
	return Config{
		Catalog:               English(),
		CaloricDensityPer100g: DefaultCaloricDensity,
		HealthAdjustments:     DefaultHealthAdjustments(),
	}
}

// Engine no guarda estado mutable; es seguro usarlo concurrentemente.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.CaloricDensityPer100g == 0 {
		cfg.CaloricDensityPer100g = DefaultCaloricDensity
	}
	if cfg.CaloricDensityPer100g < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, ErrInvalidDensity)
	}
	if len(cfg.Catalog.Proteins) == 0 || len(cfg.Catalog.Styles) == 0 {
		return nil, fmt.Errorf("%w: catalog needs proteins and styles", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Catalog.AllergySafe) == "" {
		return nil, fmt.Errorf("%w: catalog needs an allergy-safe entry", ErrInvalidConfig)
	}
	if cfg.HealthAdjustments == nil {
		cfg.HealthAdjustments = DefaultHealthAdjustments()
	}
	for h, m := range cfg.HealthAdjustments {
		if m <= 0 {
			return nil, fmt.Errorf("%w: adjustment for %s must be positive", ErrInvalidConfig, h)
		}
	}
	return &Engine{cfg: cfg}, nil
}

// Default devuelve un Engine con catálogo en inglés y 350 kcal/100g.
func Default() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Catalog() Catalog { return e.cfg.Catalog }

func (e *Engine) CaloricDensity() float64 { return e.cfg.CaloricDensityPer100g }
