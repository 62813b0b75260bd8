package diagnostic

import "nnx1/internal/model"

type evalOptions struct {
	emailSubmitted bool
}

// Option configures Evaluate.
type Option func(*evalOptions)

// WithEmailSubmitted marks the Enter Email milestone as complete.
func WithEmailSubmitted(submitted bool) Option {
	return func(o *evalOptions) {
		o.emailSubmitted = submitted
	}
}

// Evaluate computes the full deterministic result for an answer set. Unknown
// tools are evaluated with the default taxonomy; use TaxonomyFor to detect it.
func Evaluate(answers []model.Answer, tool model.ToolID, opts ...Option) (*model.Evaluation, error) {
	o := evalOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	score, err := ComputeScore(answers)
	if err != nil {
		return nil, err
	}
	tier, err := ClassifyTier(score)
	if err != nil {
		return nil, err
	}
	yes, no := CountAnswers(answers)

	return &model.Evaluation{
		Tool:             tool,
		ToolName:         tool.DisplayName(),
		Score:            score,
		YesCount:         yes,
		NoCount:          no,
		Tier:             tier,
		Insights:         ClassifyInsights(answers, tool),
		ScoreMessage:     ScoreMessage(score),
		PerformanceLevel: PerformanceLevel(score),
		Milestones:       Milestones(tool, score, o.emailSubmitted),
		TaxonomyVersion:  TaxonomyVersion,
	}, nil
}
