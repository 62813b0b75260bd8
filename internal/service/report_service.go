package service

import (
	"context"
	"fmt"

	"nnx1/internal/catalog"
	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
	"nnx1/internal/report"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// ReportService assembles the evaluation, narrative and markdown report for a
// completed answer set
type ReportService struct {
	narrative *NarrativeService
	log       logger.Logger
}

// NewReportService creates a new report service
func NewReportService(narrative *NarrativeService, log logger.Logger) *ReportService {
	return &ReportService{
		narrative: narrative,
		log:       log.Named("report"),
	}
}

// Generate builds the report. The request must carry every answer of the
// tool in question order.
func (s *ReportService) Generate(ctx context.Context, req *model.GenerateReportRequest) (*model.GenerateReportResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	tool, err := model.ParseTool(req.Tool)
	if err != nil {
		metrics.RecordUnknownTool()
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(req.Answers) != catalog.QuestionsPerTool {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidInput, catalog.QuestionsPerTool, len(req.Answers))
	}
	for i, a := range req.Answers {
		if !a.Answer.Valid() {
			return nil, fmt.Errorf("%w: answer %d is %q", ErrInvalidInput, i, a.Answer)
		}
	}

	eval, err := diagnostic.Evaluate(req.Answers, tool)
	if err != nil {
		return nil, err
	}
	narrative := s.narrative.Generate(ctx, tool, req.Answers)

	content := report.Markdown(report.Input{
		Name:    req.Name,
		Tool:    tool,
		Score:   eval.Score,
		Answers: req.Answers,
	})

	metrics.RecordEvaluation(string(tool), eval.Tier.Label)
	s.log.Info(ctx, "report generated",
		logger.String("tool", string(tool)),
		logger.Int("score", eval.Score),
		logger.String("source", narrative.Source))

	return &model.GenerateReportResponse{
		Success:         true,
		Evaluation:      eval,
		Insights:        narrative.Insights,
		Content:         content,
		Source:          narrative.Source,
		TaxonomyVersion: diagnostic.TaxonomyVersion,
	}, nil
}
