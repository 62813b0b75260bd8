package catalog

import (
	"fmt"

	"nnx1/internal/model"
)

var phaseTexts = []string{
	"Have you legally registered your business with a local, state, or federal entity?",
	"Has your business made its first sale?",
	"Have you set up a system to track revenues and expenses?",
	"Have you developed a unique value proposition for your business?",
	"Have you hired any employees (beyond founders) in the past 12 months?",
	"Do you track which products or services generate the most revenue?",
	"Have you implemented a system to gather and act on customer feedback?",
	"Do your business systems (CRM, accounting, inventory) work together and share information?",
	"Do you use automation for any business processes, such as scheduling, invoicing or reporting?",
	"Do you use technology to predict sales trends, customer demand or business performance?",
}

// PhaseQuestions returns the fixed phase assessment questions.
func PhaseQuestions() []model.Question {
	out := make([]model.Question, len(phaseTexts))
	for i, text := range phaseTexts {
		out[i] = model.Question{
			ID:   fmt.Sprintf("phase-%d", i+1),
			Code: fmt.Sprintf("PH%03d", i+1),
			Text: text,
		}
	}
	return out
}
