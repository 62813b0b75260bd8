package report

import (
	"bytes"
	"fmt"
	"html/template"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
)

// PDFInput is the content of the printable report page.
type PDFInput struct {
	Input

	// PeerYes holds the share of Yes answers from completed sessions for
	// each question position, 0-100. Missing positions render as 0.
	PeerYes []float64
}

// ChartRow is one question in the peer comparison chart.
type ChartRow struct {
	Label      string
	QuestionID string
	Text       string
	Answer     model.AnswerValue
	UserPct    int
	PeerPct    float64
}

type pdfData struct {
	ToolName        string
	Client          string
	Date            string
	Time            string
	Score           int
	TierLabel       string
	Summary         string
	ChartInsight    string
	Rows            []ChartRow
	Timeline        Timeline
	Recommendations []string
}

var pdfTemplate = template.Must(template.New("pdf").Funcs(template.FuncMap{
	"pct": func(f float64) string { return fmt.Sprintf("%.2f", f) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.ToolName}}</title>
<style>
@page { size: A4; margin: 20px; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; background: #f4f4f4; margin: 0; }
.header { background: #fff; padding: 32px; border-bottom: 2pt solid #222; }
.title { font-size: 22px; font-weight: bold; margin-bottom: 4px; }
.subtitle { font-size: 12px; color: #444; font-style: italic; }
.section { background: #fff; margin: 24px; padding: 24px; border-radius: 8px; }
.section h3 { color: #006400; margin-top: 0; }
.score { font-size: 40px; font-weight: bold; color: #006400; }
table { width: 100%; border-collapse: collapse; }
td { padding: 4px 6px; vertical-align: middle; }
.bar { height: 10px; background: #e9ecef; border-radius: 3px; }
.bar span { display: block; height: 10px; border-radius: 3px; }
.you span { background: #006400; }
.peers span { background: #999; }
.note { font-style: italic; color: #555; margin-top: 8px; }
</style>
</head>
<body>
<div class="header">
  <div class="title">{{.ToolName}}</div>
  <div class="subtitle">Prepared for {{.Client}} on {{.Date}} at {{.Time}}</div>
</div>
<div class="section">
  <h3>Summary</h3>
  <div class="score">{{.Score}}/100</div>
  <p><strong>{{.TierLabel}}</strong></p>
  <p>{{.Summary}}</p>
</div>
<div class="section">
  <h3>Your Answers Compared to Other Businesses</h3>
  <table>
  {{range .Rows}}<tr>
    <td>{{.Label}}</td>
    <td>{{.Answer}}</td>
    <td style="width: 40%;"><div class="bar you"><span style="width: {{.UserPct}}%;"></span></div></td>
    <td style="width: 40%;"><div class="bar peers"><span style="width: {{pct .PeerPct}}%;"></span></div></td>
    <td>{{pct .PeerPct}}% yes</td>
  </tr>
  {{end}}</table>
  {{if .ChartInsight}}<p class="note">{{.ChartInsight}}</p>{{end}}
</div>
<div class="section">
  <h3>Implementation Timeline</h3>
  <p><strong>Immediate (0-30 days):</strong></p>
  <ul>{{range .Timeline.Immediate}}<li>{{.}}</li>{{end}}</ul>
  <p><strong>Short-term (30-90 days):</strong></p>
  <ul>{{range .Timeline.ShortTerm}}<li>{{.}}</li>{{end}}</ul>
  <p><strong>Long-term (90+ days):</strong></p>
  <ul>{{range .Timeline.LongTerm}}<li>{{.}}</li>{{end}}</ul>
</div>
<div class="section">
  <h3>Strategic Recommendations</h3>
  <ol>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ol>
</div>
</body>
</html>
`))

// ChartRows pairs each answer with the peer Yes share for its position.
func ChartRows(answers []model.Answer, peerYes []float64) []ChartRow {
	rows := make([]ChartRow, len(answers))
	for i, a := range answers {
		row := ChartRow{
			Label:      fmt.Sprintf("Q%d", i+1),
			QuestionID: a.QuestionID,
			Text:       a.QuestionText,
			Answer:     a.Answer,
		}
		if a.IsYes() {
			row.UserPct = 100
		}
		if i < len(peerYes) {
			row.PeerPct = peerYes[i]
		}
		rows[i] = row
	}
	return rows
}

// ChartInsight comments on the respondent's Yes share against the peer
// average. It is empty when the two are within 20 points.
func ChartInsight(answers []model.Answer, peerYes []float64) string {
	if len(answers) == 0 {
		return ""
	}
	yes, _ := diagnostic.CountAnswers(answers)
	userPct := float64(yes) / float64(len(answers)) * 100

	var avg float64
	if len(peerYes) > 0 {
		for _, p := range peerYes {
			avg += p
		}
		avg /= float64(len(peerYes))
	}

	switch {
	case userPct == 100:
		return "You're ahead of the pack in clarity. Well done!"
	case userPct == 0:
		return "Great opportunity to improve. See recommendations below."
	case userPct > avg+20:
		return "You're ahead of others in several areas."
	case userPct < avg-20:
		return "You have more opportunities for improvement than most. See below."
	default:
		return ""
	}
}

// PDFHTML renders the printable report page.
func PDFHTML(in PDFInput) (string, error) {
	tier, err := diagnostic.ClassifyTier(in.Score)
	if err != nil {
		return "", err
	}
	toolName := in.Tool.DisplayName()
	date := in.date()

	var buf bytes.Buffer
	err = pdfTemplate.Execute(&buf, pdfData{
		ToolName:        toolName,
		Client:          in.clientName(),
		Date:            date.Format(DateLayout),
		Time:            date.Format("03:04 PM"),
		Score:           in.Score,
		TierLabel:       tier.Label,
		Summary:         ModuleSummary(toolName),
		ChartInsight:    ChartInsight(in.Answers, in.PeerYes),
		Rows:            ChartRows(in.Answers, in.PeerYes),
		Timeline:        ImplementationTimeline(),
		Recommendations: diagnostic.Recommendations(in.Tool),
	})
	if err != nil {
		return "", fmt.Errorf("render pdf page: %w", err)
	}
	return buf.String(), nil
}
