package diagnostic

import (
	"fmt"

	"nnx1/internal/model"
)

// PhaseQuestionCount is the fixed length of a phase assessment.
const PhaseQuestionCount = 10

type phaseBand struct {
	maxYes      int
	phase       model.Phase
	description string
	nextStep    string
}

var phaseBands = []phaseBand{
	{1, model.PhasePlanning, "You're just starting. It's the perfect time to lay strong foundations.", "Start building your business foundation with our planning tools."},
	{3, model.PhaseLaunch, "You've launched and taken your first steps. Let's build momentum.", "Accelerate your growth with our launch optimization tools."},
	{5, model.PhaseStabilization, "You're finding consistency and need to strengthen systems.", "Strengthen your systems and prepare for scaling."},
	{7, model.PhaseEstablished, "You're operating well and are ready to scale and optimize.", "Optimize and scale your established business operations."},
	{PhaseQuestionCount, model.PhaseIntegration, "You're highly optimized. Now's the time for strategic integration.", "Achieve strategic integration and advanced optimization."},
}

// ClassifyPhase maps a count of Yes answers to a life-cycle phase.
func ClassifyPhase(yesCount int) (model.PhaseResult, error) {
	if yesCount < 0 || yesCount > PhaseQuestionCount {
		return model.PhaseResult{}, fmt.Errorf("%w: yes count %d outside [0,%d]", ErrInvalidInput, yesCount, PhaseQuestionCount)
	}
	for i, b := range phaseBands {
		if yesCount <= b.maxYes {
			return model.PhaseResult{
				Phase:       b.phase,
				YesCount:    yesCount,
				Description: b.description,
				NextStep:    b.nextStep,
				Progress:    float64(i) / float64(len(phaseBands)-1) * 100,
			}, nil
		}
	}
	return model.PhaseResult{}, fmt.Errorf("%w: no phase for %d", ErrInvalidInput, yesCount)
}

// AssessPhase classifies a full set of phase answers.
func AssessPhase(answers []bool) (model.PhaseResult, error) {
	if len(answers) != PhaseQuestionCount {
		return model.PhaseResult{}, fmt.Errorf("%w: expected %d phase answers, got %d", ErrInvalidInput, PhaseQuestionCount, len(answers))
	}
	yes := 0
	for _, a := range answers {
		if a {
			yes++
		}
	}
	return ClassifyPhase(yes)
}
