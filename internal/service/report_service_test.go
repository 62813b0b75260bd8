package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nnx1/internal/diagnostic"
	"nnx1/internal/llm"
	"nnx1/internal/model"
	"nnx1/pkg/logger"
)

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(newNarrative(t, nil), logger.NewNop())

	resp, err := svc.Generate(ctx, &model.GenerateReportRequest{
		Tool:    "cash-flow",
		Name:    "Acme Bakery",
		Answers: answersFor(t, model.ToolCashFlow, "YYYYYYYYNN"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 80, resp.Evaluation.Score)
	assert.Equal(t, model.SourceFallback, resp.Source)
	assert.Equal(t, diagnostic.TaxonomyVersion, resp.TaxonomyVersion)
	assert.Len(t, resp.Insights, 3)
	assert.Contains(t, resp.Content, "Acme Bakery")
	assert.Contains(t, resp.Content, "80")
}

func TestReportService_NarrativeFallbackOnError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddError(&llm.ErrProviderUnavailable{})
	svc := NewReportService(newNarrative(t, mock), logger.NewNop())

	resp, err := svc.Generate(context.Background(), &model.GenerateReportRequest{
		Tool:    "marketing",
		Answers: answersFor(t, model.ToolMarketing, "NNNNNNNNNN"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallbackAfterError, resp.Source)
	assert.Equal(t, 0, resp.Evaluation.Score)
}

func TestReportService_RejectsBadInput(t *testing.T) {
	svc := NewReportService(newNarrative(t, nil), logger.NewNop())
	ctx := context.Background()

	cases := map[string]*model.GenerateReportRequest{
		"nil request":   nil,
		"unknown tool":  {Tool: "astrology", Answers: answersFor(t, model.ToolMarketing, "YYYYYYYYYY")},
		"no answers":    {Tool: "marketing"},
		"short answers": {Tool: "marketing", Answers: answersFor(t, model.ToolMarketing, "YYYYYYYYYY")[:5]},
		"bad value": {Tool: "marketing", Answers: []model.Answer{
			{Answer: "Yes"}, {Answer: "Yes"}, {Answer: "Yes"}, {Answer: "Yes"}, {Answer: "Yes"},
			{Answer: "Yes"}, {Answer: "Yes"}, {Answer: "Yes"}, {Answer: "Yes"}, {Answer: "maybe"},
		}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Generate(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestInsightService_Evaluate(t *testing.T) {
	svc := NewInsightService(logger.NewNop())
	ctx := context.Background()

	eval, err := svc.Evaluate(ctx, &model.EvaluateRequest{
		Tool:    "data-hygiene",
		Answers: answersFor(t, model.ToolDataHygiene, "YYYYYYYYYY"),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Score)
	assert.Equal(t, "Level 4: Pro Optimizer", eval.Tier.Label)

	// unknown tools fall back to the default taxonomy
	eval, err = svc.Evaluate(ctx, &model.EvaluateRequest{
		Tool: "bookkeeping",
		Answers: []model.Answer{
			{QuestionText: "Do you reconcile accounts monthly?", Answer: model.AnswerYes},
			{QuestionText: "Do you track expenses?", Answer: model.AnswerNo},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, eval.Score)
	assert.Equal(t, model.ToolID("bookkeeping"), eval.Tool)

	_, err = svc.Evaluate(ctx, &model.EvaluateRequest{Tool: "marketing"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Evaluate(ctx, &model.EvaluateRequest{Answers: answersFor(t, model.ToolMarketing, "YYYYYYYYYY")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInsightService_AssessPhase(t *testing.T) {
	svc := NewInsightService(logger.NewNop())
	ctx := context.Background()

	answers := make([]bool, 10)
	for i := 0; i < 4; i++ {
		answers[i] = true
	}
	res, err := svc.AssessPhase(ctx, answers)
	require.NoError(t, err)
	assert.Equal(t, model.PhaseStabilization, res.Phase)
	assert.Equal(t, 4, res.YesCount)

	_, err = svc.AssessPhase(ctx, answers[:9])
	assert.ErrorIs(t, err, ErrInvalidInput)
}
