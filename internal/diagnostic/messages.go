package diagnostic

import "nnx1/internal/model"

// ScoreMessage is the one-line headline shown above the score.
func ScoreMessage(score int) string {
	switch {
	case score == MaxScore:
		return "Excellent! Your business is performing well, but we can help you go even further"
	case score == MinScore:
		return "No worries: this is the first step to getting clear. Let's fix this together"
	case score >= 80:
		return "Your business shows strong performance with room for strategic improvements"
	case score >= 60:
		return "Your business shows good performance with several areas for improvement"
	default:
		return "Your business has significant opportunities for improvement and growth"
	}
}

// PerformanceLevel is the short label used in the email header.
func PerformanceLevel(score int) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Below Average"
	default:
		return "Needs Attention"
	}
}

var recommendations = map[model.ToolID][]string{
	model.ToolDataHygiene: {
		"Implement a centralized Customer Relationship Management (CRM) system",
		"Establish automated data synchronization between key business systems",
		"Create standardized data entry procedures and training protocols",
		"Set up automated reporting dashboards for real-time business metrics",
		"Implement data backup and security protocols",
		"Schedule monthly data audits to maintain accuracy",
	},
	model.ToolMarketing: {
		"Implement marketing attribution tracking using Google Analytics 4",
		"Develop detailed buyer personas based on your best customers",
		"Set up automated customer feedback collection systems",
		"Create consistent brand messaging across all marketing channels",
		"Establish A/B testing protocols for campaigns and website elements",
		"Implement marketing automation to nurture leads",
	},
	model.ToolCashFlow: {
		"Create rolling 13-week cash flow forecasts updated weekly",
		"Implement automated invoicing and payment reminder systems",
		"Establish business emergency fund equal to 3-6 months operating expenses",
		"Set up weekly financial dashboards with key metrics",
		"Negotiate better payment terms with suppliers and customers",
		"Consider invoice factoring or business lines of credit for flexibility",
	},
}

var defaultRecommendations = []string{
	"Implement systematic processes to address identified operational gaps",
	"Establish regular review cycles to monitor progress",
	"Consider automation tools to reduce manual work",
	"Set up clear metrics and KPIs to track improvement",
	"Schedule quarterly business health assessments",
}

// Recommendations returns the strategic recommendations for a tool.
func Recommendations(tool model.ToolID) []string {
	src, ok := recommendations[tool]
	if !ok {
		src = defaultRecommendations
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

const milestoneRecommendations = 4

// Milestones builds the journey track for a score. Step completion comes from
// the caller's session state only.
func Milestones(tool model.ToolID, score int, emailSubmitted bool) model.Milestones {
	return model.Milestones{
		Recommendations: Recommendations(tool)[:milestoneRecommendations],
		Steps: []model.MilestoneStep{
			{
				Label:       "Take Diagnostic",
				Description: "You completed the module diagnostic to assess your current business status",
				Completed:   true,
			},
			{
				Label:       "Free Insight",
				Description: "This is a preview of your results. See where you stand!",
				Completed:   true,
			},
			{
				Label:       "Enter Email",
				Description: "Want a detailed breakdown for this module? Enter your email & we'll send it right over",
				Completed:   emailSubmitted,
			},
			{
				Label:       "Sign-up",
				Description: "Sign up to unlock all features: multi-page report, tailored recommendations and staffing match tool",
				Completed:   false,
			},
		},
		PointerIndex: pointerIndex(score),
	}
}

func pointerIndex(score int) int {
	switch {
	case score <= 30:
		return 0
	case score <= 60:
		return 1
	case score <= 85:
		return 2
	default:
		return 3
	}
}
