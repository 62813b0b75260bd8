package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nnx1/internal/catalog"
	"nnx1/internal/model"
	"nnx1/internal/report"
)

var reportDate = time.Date(2024, time.October, 3, 14, 5, 0, 0, time.UTC)

func answers(t *testing.T, tool model.ToolID, pattern string) []model.Answer {
	t.Helper()
	def, err := catalog.Tool(tool)
	require.NoError(t, err)
	out := make([]model.Answer, len(pattern))
	for i, c := range pattern {
		v := model.AnswerNo
		if c == 'Y' {
			v = model.AnswerYes
		}
		out[i] = model.Answer{
			QuestionID:   def.Questions[i].ID,
			QuestionText: def.Questions[i].Text,
			Answer:       v,
		}
	}
	return out
}

func TestMarkdown(t *testing.T) {
	md := report.Markdown(report.Input{
		Name:    "Acme Co",
		Tool:    model.ToolCashFlow,
		Score:   70,
		Answers: answers(t, model.ToolCashFlow, "YYYYYYYNNN"),
		Date:    reportDate,
	})

	assert.True(t, strings.HasPrefix(md, "**NBLK BUSINESS DIAGNOSTIC REPORT**"))
	assert.Contains(t, md, "**Client:** Acme Co")
	assert.Contains(t, md, "**Assessment:** Cash Flow & Financial Clarity Diagnostic")
	assert.Contains(t, md, "**Date:** October 3, 2024")
	assert.Contains(t, md, "**Score:** 70/100")
	assert.Contains(t, md, "Your Cash assessment reveals a score of 70/100")
	assert.Contains(t, md, "You have 7 areas working well, but 3 critical gaps")
	assert.Contains(t, md, "1. **Cash Flow Visibility Gap**")
	assert.Contains(t, md, "3. **Financial Resilience Risk**")
	assert.Contains(t, md, "6. Consider invoice factoring or business lines of credit for flexibility")
	assert.Contains(t, md, "- Days sales outstanding reduction")
	assert.Contains(t, md, "**Immediate (0-30 days):**\n- Review diagnostic report with leadership team")
	assert.Contains(t, md, "Phone: (212) 598-3030")
}

func TestMarkdown_Defaults(t *testing.T) {
	md := report.Markdown(report.Input{
		Tool:    model.ToolID("unknown"),
		Score:   20,
		Answers: answers(t, model.ToolDataHygiene, "YYNNNNNNNN"),
		Date:    reportDate,
	})

	assert.Contains(t, md, "**Client:** Valued Client")
	assert.Contains(t, md, "5. Schedule quarterly business health assessments")
	assert.NotContains(t, md, "6. ")
	assert.Contains(t, md, "- Team productivity metrics")
	assert.Contains(t, md, "highlighting substantial opportunities for improvement")
}

func TestExecutiveSummary(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Your Marketing systems demonstrate strong performance"},
		{80, "Your Marketing systems demonstrate strong performance"},
		{79, "Your Marketing assessment reveals a score of 79/100"},
		{60, "Your Marketing assessment reveals a score of 60/100"},
		{59, "Your Marketing diagnostic shows a score of 59/100"},
	}
	for _, tt := range tests {
		got := report.ExecutiveSummary(model.ToolMarketing.DisplayName(), tt.score, 1, 1)
		assert.True(t, strings.HasPrefix(got, tt.want), "score %d: %s", tt.score, got)
	}
}

func TestEmailHTML(t *testing.T) {
	content := report.Markdown(report.Input{
		Name:    "Acme Co",
		Tool:    model.ToolMarketing,
		Score:   90,
		Answers: answers(t, model.ToolMarketing, "YYYYYYYYYN"),
		Date:    reportDate,
	})

	html, err := report.EmailHTML(report.EmailInput{
		Name:    "Acme Co",
		Tool:    model.ToolMarketing,
		Score:   90,
		Content: content,
		WithPDF: true,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>NBLK BUSINESS DIAGNOSTIC REPORT</strong>")
	assert.Contains(t, html, "Exceptional Performance")
	assert.Contains(t, html, "90/100")
	assert.Contains(t, html, "Prepared for Acme Co")
	assert.Contains(t, html, "Professional PDF Report Attached")
	assert.Contains(t, html, report.DefaultSignUpURL)
	assert.Contains(t, html, "<li>Lead conversion rate optimization</li>")
}

func TestEmailHTML_EscapesRawHTML(t *testing.T) {
	html, err := report.EmailHTML(report.EmailInput{
		Name:    "<b>Eve</b>",
		Tool:    model.ToolDataHygiene,
		Score:   10,
		Content: "Hello <script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>Eve</b>")
	assert.NotContains(t, html, "PDF Report Attached")
	assert.Contains(t, html, "Needs Attention Performance")
}

func TestChartInsight(t *testing.T) {
	peers := []float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	tool := model.ToolDataHygiene

	assert.Equal(t, "You're ahead of the pack in clarity. Well done!",
		report.ChartInsight(answers(t, tool, "YYYYYYYYYY"), peers))
	assert.Equal(t, "Great opportunity to improve. See recommendations below.",
		report.ChartInsight(answers(t, tool, "NNNNNNNNNN"), peers))
	assert.Equal(t, "You're ahead of others in several areas.",
		report.ChartInsight(answers(t, tool, "YYYYYYYYNN"), peers))
	assert.Equal(t, "You have more opportunities for improvement than most. See below.",
		report.ChartInsight(answers(t, tool, "YYNNNNNNNN"), peers))
	assert.Empty(t, report.ChartInsight(answers(t, tool, "YYYYYNNNNN"), peers))
	assert.Empty(t, report.ChartInsight(nil, peers))
}

func TestChartRows(t *testing.T) {
	rows := report.ChartRows(answers(t, model.ToolCashFlow, "YNYNYNYNYN"), []float64{12.5, 40})
	require.Len(t, rows, 10)

	assert.Equal(t, "Q1", rows[0].Label)
	assert.Equal(t, 100, rows[0].UserPct)
	assert.Equal(t, 12.5, rows[0].PeerPct)
	assert.Equal(t, 0, rows[1].UserPct)
	assert.Equal(t, 40.0, rows[1].PeerPct)
	assert.Equal(t, 0.0, rows[9].PeerPct)
	assert.Equal(t, "Q10", rows[9].Label)
}

func TestPDFHTML(t *testing.T) {
	page, err := report.PDFHTML(report.PDFInput{
		Input: report.Input{
			Name:    "Acme Co",
			Tool:    model.ToolDataHygiene,
			Score:   40,
			Answers: answers(t, model.ToolDataHygiene, "YYYYNNNNNN"),
			Date:    reportDate,
		},
		PeerYes: []float64{33.33, 66.67},
	})
	require.NoError(t, err)

	assert.Contains(t, page, "Data Hygiene &amp; Business Clarity Diagnostic")
	assert.Contains(t, page, "Prepared for Acme Co on October 3, 2024 at 02:05 PM")
	assert.Contains(t, page, "Level 2: Builder")
	assert.Contains(t, page, "based on one module, Data Hygiene &amp; Business Clarity.")
	assert.Contains(t, page, "33.33% yes")
	assert.Contains(t, page, "<li>Schedule monthly data audits to maintain accuracy</li>")
}

func TestPDFHTML_InvalidScore(t *testing.T) {
	_, err := report.PDFHTML(report.PDFInput{Input: report.Input{Tool: model.ToolMarketing, Score: 101}})
	assert.Error(t, err)
}
