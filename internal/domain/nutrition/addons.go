package nutrition

// AddOns devuelve los suplementos recomendados. Cada regla es independiente;
// si ninguna aplica se recomienda el básico de vitaminas.
func (e *Engine) AddOns(p Profile) []string {
	t := e.cfg.Catalog.AddOns
	out := make([]string, 0, 4)

	if p.AgeMonths < 12 {
		out = append(out, t.Growth)
	}
	if p.AgeMonths > 84 {
		out = append(out, t.Senior)
	}
	if p.HasIssue(HealthJointProblems) {
		out = append(out, t.Glucosamine)
	}
	if p.HasIssue(HealthSkinAllergy) {
		out = append(out, t.Omega3)
	}
	if p.HasIssue(HealthDigestiveIssues) {
		out = append(out, t.Probiotic)
	}
	if p.BodyConditionScore >= 7 {
		out = append(out, t.WeightControl)
	}
	if p.BodyConditionScore <= 3 {
		out = append(out, t.WeightGain)
	}

	if len(out) == 0 {
		out = append(out, t.BasicVitamins)
	}
	return out
}
