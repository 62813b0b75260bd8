package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// InsightService runs the stateless evaluation and phase assessment
type InsightService struct {
	log logger.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(log logger.Logger) *InsightService {
	return &InsightService{log: log.Named("insight")}
}

// Evaluate scores an arbitrary answer set. Tools outside the catalog are
// evaluated against the default taxonomy.
func (s *InsightService) Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.Evaluation, error) {
	if req == nil || strings.TrimSpace(req.Tool) == "" {
		return nil, fmt.Errorf("%w: toolId is required", ErrInvalidInput)
	}
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: no answers", ErrInvalidInput)
	}
	for i, a := range req.Answers {
		if !a.Answer.Valid() {
			return nil, fmt.Errorf("%w: answer %d is %q", ErrInvalidInput, i, a.Answer)
		}
	}

	tool, err := model.ParseTool(req.Tool)
	if errors.Is(err, model.ErrUnknownTool) {
		metrics.RecordUnknownTool()
		s.log.Warn(ctx, "unknown tool, using default taxonomy",
			logger.String("tool", string(tool)),
			logger.String("default", string(diagnostic.DefaultTool)))
	}

	eval, err := diagnostic.Evaluate(req.Answers, tool, diagnostic.WithEmailSubmitted(req.EmailSubmitted))
	if err != nil {
		return nil, err
	}
	label := string(tool)
	if !tool.Known() {
		label = "unknown"
	}
	metrics.RecordEvaluation(label, eval.Tier.Label)
	return eval, nil
}

// AssessPhase classifies the business phase from the ten phase answers
func (s *InsightService) AssessPhase(ctx context.Context, answers []bool) (model.PhaseResult, error) {
	result, err := diagnostic.AssessPhase(answers)
	if err != nil {
		return model.PhaseResult{}, err
	}
	metrics.RecordPhase(string(result.Phase))
	s.log.Debug(ctx, "phase assessed", logger.String("phase", string(result.Phase)), logger.Int("yesCount", result.YesCount))
	return result, nil
}
