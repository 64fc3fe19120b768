package nutrition

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Plan agrupa todo lo que se adjunta a un ítem de pedido.
type Plan struct {
	Requirements CalorieCalculation `json:"requirements"`
	MenuRotation []string           `json:"menu_rotation"`
	AddOns       []string           `json:"add_ons"`
	Feeding      FeedingPlan        `json:"feeding"`
}

func (e *Engine) Plan(p Profile, days int) (Plan, error) {
	calc, err := e.DailyRequirements(p)
	if err != nil {
		return Plan{}, err
	}
	menu, err := e.MenuRotation(p, days)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Requirements: calc,
		MenuRotation: menu,
		AddOns:       e.AddOns(p),
		Feeding:      e.feedingPlan(p, calc),
	}, nil
}

// PlanBatch calcula un Plan por perfil en paralelo. El resultado respeta el
// orden de entrada y es idéntico a calcularlos en secuencia.
func (e *Engine) PlanBatch(ctx context.Context, profiles []Profile, days int) ([]Plan, error) {
	out := make([]Plan, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := e.Plan(profiles[i], days)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
