package nutrition

import "fmt"

// MenuRotation genera `days` entradas "proteína estilo", ciclando proteínas
// (sin las alergénicas) y estilos de preparación de forma independiente.
func (e *Engine) MenuRotation(p Profile, days int) ([]string, error) {
	if days < 0 || days > MaxMenuDays {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}

	available := e.availableProteins(p)
	styles := e.cfg.Catalog.Styles

	menu := make([]string, 0, days)
	for i := 0; i < days; i++ {
		menu = append(menu, available[i%len(available)]+" "+styles[i%len(styles)])
	}
	return menu, nil
}

// availableProteins nunca devuelve una lista vacía.
func (e *Engine) availableProteins(p Profile) []string {
	out := make([]string, 0, len(e.cfg.Catalog.Proteins))
	for _, pl := range e.cfg.Catalog.Proteins {
		if p.AllergicTo(pl.Protein) {
			continue
		}
		out = append(out, pl.Label)
	}
	if len(out) == 0 {
		out = append(out, e.cfg.Catalog.AllergySafe)
	}
	return out
}
