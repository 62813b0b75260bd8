package diagnostic

import "nnx1/internal/model"

// ActionSteps returns one action step for each of the first limit No answers,
// in answer order. A limit <= 0 means every No answer.
func ActionSteps(answers []model.Answer, tool model.ToolID, limit int) []string {
	tax, _ := TaxonomyFor(tool)
	var steps []string
	for _, a := range answers {
		if a.IsYes() {
			continue
		}
		if limit > 0 && len(steps) == limit {
			break
		}
		steps = append(steps, ActionStepFor(tax, a.QuestionText))
	}
	return steps
}

// ActionStepFor returns the action step of the category matching text.
func ActionStepFor(tax *Taxonomy, text string) string {
	if c, ok := tax.Categorize(text); ok {
		return c.ActionStep
	}
	return DefaultActionStep
}
