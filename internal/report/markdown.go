// Package report renders diagnostic results as a Markdown report, a branded
// HTML email and a printable page for PDF conversion.
package report

import (
	"strings"
	"text/template"
	"time"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
)

// DefaultClientName is used when the respondent gave no name.
const DefaultClientName = "Valued Client"

// DateLayout formats report dates.
const DateLayout = "January 2, 2006"

// Input is everything needed to render a report for one completed diagnostic.
type Input struct {
	Name    string
	Tool    model.ToolID
	Score   int
	Answers []model.Answer
	Date    time.Time
}

func (in Input) clientName() string {
	if name := strings.TrimSpace(in.Name); name != "" {
		return name
	}
	return DefaultClientName
}

func (in Input) date() time.Time {
	if in.Date.IsZero() {
		return time.Now()
	}
	return in.Date
}

type markdownData struct {
	Client          string
	ToolName        string
	Date            string
	Score           int
	Summary         string
	Insights        []KeyInsight
	Recommendations []string
	Timeline        Timeline
	Metrics         []string
}

var markdownTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`**NBLK BUSINESS DIAGNOSTIC REPORT**
**NNX1™ Small Business Solutions**

**Client:** {{.Client}}
**Assessment:** {{.ToolName}}
**Date:** {{.Date}}
**Score:** {{.Score}}/100

---

**EXECUTIVE SUMMARY**

{{.Summary}}

---

**KEY INSIGHTS**
{{range $i, $in := .Insights}}
{{inc $i}}. **{{$in.Title}}**
   {{$in.Description}}
{{end}}
---

**STRATEGIC RECOMMENDATIONS**

{{range $i, $r := .Recommendations}}{{inc $i}}. {{$r}}
{{end}}
---

**IMPLEMENTATION TIMELINE**

**Immediate (0-30 days):**
{{range .Timeline.Immediate}}- {{.}}
{{end}}
**Short-term (30-90 days):**
{{range .Timeline.ShortTerm}}- {{.}}
{{end}}
**Long-term (90+ days):**
{{range .Timeline.LongTerm}}- {{.}}
{{end}}
---

**SUCCESS METRICS**

{{range .Metrics}}- {{.}}
{{end}}
---

**NEXT STEPS**

1. Review this report with your leadership team within 48 hours
2. Prioritize the top 3 recommendations based on impact and resources
3. Schedule follow-up consultation to discuss implementation strategy

**Contact Information:**
NBLK Consulting
442 5th Avenue, #2304, New York, NY 10018
Email: awashington@nblkconsulting.com
Phone: (212) 598-3030

*NNX1™ Small Business Solutions - Empowering Business Clarity Through Data-Driven Insights*
`))

// Markdown renders the full written report.
func Markdown(in Input) string {
	yes, no := diagnostic.CountAnswers(in.Answers)
	toolName := in.Tool.DisplayName()

	data := markdownData{
		Client:          in.clientName(),
		ToolName:        toolName,
		Date:            in.date().Format(DateLayout),
		Score:           in.Score,
		Summary:         ExecutiveSummary(toolName, in.Score, no, yes),
		Insights:        KeyInsights(in.Tool),
		Recommendations: diagnostic.Recommendations(in.Tool),
		Timeline:        ImplementationTimeline(),
		Metrics:         SuccessMetrics(in.Tool),
	}

	var sb strings.Builder
	// Template and data are fixed, so execution cannot fail on well-formed input.
	if err := markdownTemplate.Execute(&sb, data); err != nil {
		return ""
	}
	return sb.String()
}
