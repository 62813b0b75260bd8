package report

import (
	"fmt"
	"strings"

	"nnx1/internal/model"
)

// KeyInsight is a titled finding shown in the report body.
type KeyInsight struct {
	Title       string
	Description string
}

// Timeline groups implementation steps by horizon.
type Timeline struct {
	Immediate []string
	ShortTerm []string
	LongTerm  []string
}

var keyInsights = map[model.ToolID][]KeyInsight{
	model.ToolDataHygiene: {
		{"Data Fragmentation Risk", "Multiple disconnected systems are creating data silos, leading to inefficiencies and decision-making delays."},
		{"Manual Process Overhead", "Excessive manual data entry is consuming valuable time and introducing errors into business processes."},
		{"Integration Opportunities", "Your business tools lack proper integration, missing opportunities for automation and efficiency gains."},
	},
	model.ToolMarketing: {
		{"Attribution Gap", "You're missing critical insights about which marketing channels and campaigns drive actual business results."},
		{"Audience Targeting Inefficiency", "Broad targeting is diluting your marketing impact and reducing return on advertising spend."},
		{"Customer Feedback Loop Missing", "Limited customer feedback collection is preventing optimization of offerings and customer experience."},
	},
	model.ToolCashFlow: {
		{"Cash Flow Visibility Gap", "Lack of forward-looking cash flow forecasting is creating uncertainty in business planning and decision-making."},
		{"Collections Process Weakness", "Inefficient payment collection processes are extending cash conversion cycles and impacting working capital."},
		{"Financial Resilience Risk", "Insufficient emergency reserves leave your business vulnerable to unexpected disruptions or opportunities."},
	},
}

var successMetrics = map[model.ToolID][]string{
	model.ToolDataHygiene: {
		"Data accuracy rate (target: 95%+)",
		"Time spent on manual data entry (reduce by 50%)",
		"Report generation time (reduce by 60%)",
		"System integration completion rate",
	},
	model.ToolMarketing: {
		"Marketing ROI improvement (target: 25% increase)",
		"Lead conversion rate optimization",
		"Customer acquisition cost reduction",
		"Campaign attribution accuracy (target: 90%+)",
	},
	model.ToolCashFlow: {
		"Cash flow forecast accuracy (target: 95%+)",
		"Days sales outstanding reduction",
		"Emergency fund target achievement",
		"Payment collection efficiency improvement",
	},
}

var defaultMetrics = []string{
	"Overall operational efficiency improvement",
	"Process automation implementation rate",
	"Team productivity metrics",
	"Customer satisfaction scores",
}

var timeline = Timeline{
	Immediate: []string{
		"Review diagnostic report with leadership team",
		"Prioritize top 3 recommendations by impact and resources",
		"Assign team members as owners for each initiative",
	},
	ShortTerm: []string{
		"Create detailed implementation plans for priority areas",
		"Begin implementing quick wins for immediate results",
		"Set up weekly progress check-ins",
	},
	LongTerm: []string{
		"Establish quarterly business diagnostic reviews",
		"Scale successful improvements across other business areas",
		"Consider engaging professional consultants for complex implementations",
	},
}

// KeyInsights returns the three headline findings for a tool. Unknown tools
// have none.
func KeyInsights(tool model.ToolID) []KeyInsight {
	return append([]KeyInsight(nil), keyInsights[tool]...)
}

// SuccessMetrics returns the metrics to track for a tool.
func SuccessMetrics(tool model.ToolID) []string {
	if m, ok := successMetrics[tool]; ok {
		return append([]string(nil), m...)
	}
	return append([]string(nil), defaultMetrics...)
}

// ImplementationTimeline returns the fixed three-horizon plan.
func ImplementationTimeline() Timeline {
	return Timeline{
		Immediate: append([]string(nil), timeline.Immediate...),
		ShortTerm: append([]string(nil), timeline.ShortTerm...),
		LongTerm:  append([]string(nil), timeline.LongTerm...),
	}
}

// ExecutiveSummary is the opening paragraph, keyed on the score band. The
// area word is the first word of the tool's display name.
func ExecutiveSummary(toolName string, score, gaps, strengths int) string {
	area := toolName
	if fields := strings.Fields(toolName); len(fields) > 0 {
		area = fields[0]
	}

	switch {
	case score >= 80:
		return fmt.Sprintf("Your %s systems demonstrate strong performance with a score of %d/100. While you have %d areas of strength, there are %d strategic opportunities that could elevate your business to the next level. Your foundation is solid, making this an ideal time to optimize and scale operations.", area, score, strengths, gaps)
	case score >= 60:
		return fmt.Sprintf("Your %s assessment reveals a score of %d/100, indicating good foundational practices with significant room for improvement. You have %d areas working well, but %d critical gaps are limiting your business potential. Addressing these areas could dramatically improve operational efficiency.", area, score, strengths, gaps)
	default:
		return fmt.Sprintf("Your %s diagnostic shows a score of %d/100, highlighting substantial opportunities for improvement. While you have %d positive elements to build upon, %d critical areas require immediate attention. This assessment provides a clear roadmap for transforming your business operations.", area, score, strengths, gaps)
	}
}

// ModuleSummary is the PDF's opening note for a tool.
func ModuleSummary(toolName string) string {
	module := strings.TrimSuffix(toolName, " Diagnostic")
	return fmt.Sprintf("This is an early-stage assessment based on one module, %s. Completing all modules and adding business info in your profile will improve accuracy and refine recommendations.", module)
}
