package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nnx1/internal/config"
	"nnx1/internal/llm"
	"nnx1/internal/model"
	"nnx1/pkg/logger"
)

func newNarrative(t *testing.T, provider llm.Provider) *NarrativeService {
	t.Helper()
	svc, err := NewNarrativeService(provider, config.DefaultNarrativeConfig(), logger.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNarrativeService_NotConfigured(t *testing.T) {
	svc := newNarrative(t, nil)
	answers := answersFor(t, model.ToolMarketing, "YYYYYYYYYY")

	res := svc.Generate(context.Background(), model.ToolMarketing, answers)
	assert.Equal(t, model.SourceFallback, res.Source)
	require.Len(t, res.Insights, 3)
	assert.True(t, strings.HasPrefix(res.Insights[0].Description, "Excellent!"))
}

func TestNarrativeService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddError(&llm.ErrRateLimit{Err: errors.New("slow down")})
	svc := newNarrative(t, mock)
	answers := answersFor(t, model.ToolCashFlow, "YYYYYNNNNN")

	res := svc.Generate(context.Background(), model.ToolCashFlow, answers)
	assert.Equal(t, model.SourceFallbackAfterError, res.Source)
	assert.Equal(t, FallbackNarrative(model.ToolCashFlow, answers), res.Insights)
	assert.Equal(t, 1, mock.CallCount())
}

func TestNarrativeService_UnparseableOutput(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse("Have you thought about your cash flow?")
	svc := newNarrative(t, mock)
	answers := answersFor(t, model.ToolCashFlow, "NNNNNNNNNN")

	res := svc.Generate(context.Background(), model.ToolCashFlow, answers)
	assert.Equal(t, model.SourceFallbackAfterError, res.Source)
	require.Len(t, res.Insights, 3)
	assert.Contains(t, res.Insights[0].Description, "first step")
}

func TestNarrativeService_SuccessIsCached(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(`{"insights": ["You track leads well.", "Set up a monthly budget review.", "Automate invoice reminders."]}`)
	svc := newNarrative(t, mock)
	answers := answersFor(t, model.ToolDataHygiene, "YYYNNNYYNN")

	res := svc.Generate(context.Background(), model.ToolDataHygiene, answers)
	assert.Equal(t, "mock", res.Source)
	require.Len(t, res.Insights, 3)
	assert.Equal(t, "You track leads well.", res.Insights[0].Description)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.True(t, req.JSON)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, model.ToolDataHygiene.DisplayName())
	assert.Contains(t, req.Messages[0].Content, "1. "+answers[0].QuestionText+" - Yes")

	again := svc.Generate(context.Background(), model.ToolDataHygiene, answers)
	assert.Equal(t, res, again)
	assert.Equal(t, 1, mock.CallCount())
}

func TestParseNarrative(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		got, err := ParseNarrative("```json\n{\"insights\": [\"One.\", \"Two.\"]}\n```")
		require.NoError(t, err)
		assert.Equal(t, []model.NarrativeInsight{{Description: "One."}, {Description: "Two."}}, got)
	})

	t.Run("object items", func(t *testing.T) {
		got, err := ParseNarrative(`{"insights": [{"description": "One."}, {"insight": "Two."}]}`)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Two.", got[1].Description)
	})

	t.Run("repaired json", func(t *testing.T) {
		got, err := ParseNarrative(`{"insights": ["One.", "Two.",]}`)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Two.", got[1].Description)
	})

	t.Run("insight lines", func(t *testing.T) {
		content := "Here you go:\n1. Insight: Keep your books current.\n2. Insight: Are you tracking churn?\n3. insight: Review pricing yearly.\n"
		got, err := ParseNarrative(content)
		require.NoError(t, err)
		assert.Equal(t, []model.NarrativeInsight{
			{Description: "Keep your books current."},
			{Description: "Review pricing yearly."},
		}, got)
	})

	t.Run("capped at three", func(t *testing.T) {
		got, err := ParseNarrative(`{"insights": ["a", "b", "c", "d"]}`)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("nothing usable", func(t *testing.T) {
		_, err := ParseNarrative(`{"insights": ["Why not?"]}`)
		var invalid *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})
}

func TestFallbackNarrative(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		lead    string
		count   int
	}{
		{"all yes", "YYYYYYYYYY", "Excellent!", 3},
		{"all no", "NNNNNNNNNN", "Taking this diagnostic", 3},
		{"mostly yes", "YYYYYYYNNN", "Your business has strong practices in 7 key areas.", 3},
		{"mostly no with one yes", "YNNNNNNNNN", "You have 1 area working well.", 3},
		{"mostly no", "YYNNNNNNNN", "You have 2 areas working well.", 3},
		{"mixed", "YYYYYNNNNN", "You have 5 strong areas and 5 opportunities for improvement.", 3},
		{"one no", "YYYYYYYYYN", "Your business has strong practices in 9 key areas.", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackNarrative(model.ToolMarketing, answersFor(t, model.ToolMarketing, tc.pattern))
			require.Len(t, got, tc.count)
			assert.True(t, strings.HasPrefix(got[0].Description, tc.lead), got[0].Description)
			for _, in := range got {
				assert.False(t, strings.HasSuffix(in.Description, "?"))
			}
		})
	}
}
