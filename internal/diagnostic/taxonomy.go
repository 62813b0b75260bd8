package diagnostic

import (
	"strings"

	"nnx1/internal/model"
)

// TaxonomyVersion identifies the keyword table below. Bump it whenever a
// keyword, description or suggestion changes so stored reports can be traced.
const TaxonomyVersion = "2024-10.1"

// DefaultActionStep is used for No answers that match no category.
const DefaultActionStep = "Take one small step this week to improve this area. Every improvement counts."

// Category is one topic bucket of a tool's taxonomy.
type Category struct {
	Name            string
	Keywords        []string
	Strength        string
	Improvement     string
	ToolSuggestions []string
	ActionStep      string
}

// Matches reports whether lowered text contains any of the category keywords.
func (c *Category) Matches(lowered string) bool {
	for _, kw := range c.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Taxonomy is the ordered category list for one tool.
type Taxonomy struct {
	Tool       model.ToolID
	Categories []Category
}

// Categorize returns the first category, in definition order, whose keywords
// match the text. Later categories never win a tie.
func (t *Taxonomy) Categorize(text string) (*Category, bool) {
	lowered := strings.ToLower(text)
	for i := range t.Categories {
		if t.Categories[i].Matches(lowered) {
			return &t.Categories[i], true
		}
	}
	return nil, false
}

// DefaultTool is the tool whose taxonomy serves unknown tool ids.
const DefaultTool = model.ToolDataHygiene

// TaxonomyFor returns the taxonomy for a tool. The second result is true when
// the tool is unknown and the default taxonomy was substituted.
func TaxonomyFor(tool model.ToolID) (*Taxonomy, bool) {
	if t, ok := taxonomies[tool]; ok {
		return t, false
	}
	return taxonomies[DefaultTool], true
}

var taxonomies = map[model.ToolID]*Taxonomy{
	model.ToolDataHygiene: {
		Tool: model.ToolDataHygiene,
		Categories: []Category{
			{
				Name:        "Data Centralization",
				Keywords:    []string{"place", "keep", "organized"},
				Strength:    "You have centralized data management",
				Improvement: "You need centralized data management",
				ToolSuggestions: []string{
					"Centralized data management platforms",
					"Flexible business data organization tools",
					"Comprehensive business documentation systems",
				},
				ActionStep: "Pick one tool (like a spreadsheet or simple app) and start keeping all your info in one place. That is a good start.",
			},
			{
				Name:        "System Integration",
				Keywords:    []string{"talk", "system", "tools"},
				Strength:    "You have integrated systems",
				Improvement: "You need better system integration",
				ToolSuggestions: []string{
					"Automated data synchronization tools",
					"Workflow and project management platforms",
					"Team communication systems",
				},
				ActionStep: "Set up a weekly 15-minute meeting to share updates. This will help everyone stay on the same page.",
			},
			{
				Name:        "Data Quality",
				Keywords:    []string{"mistakes", "reports", "understand"},
				Strength:    "You have good data quality",
				Improvement: "You need better data quality",
				ToolSuggestions: []string{
					"Workflow management platforms",
					"Task tracking systems",
					"Project organization tools",
				},
				ActionStep: "Start using simple checklists for important tasks. This will help reduce errors and make your work more reliable.",
			},
			{
				Name:        "Lead Tracking",
				Keywords:    []string{"leads", "customer"},
				Strength:    "You have lead tracking systems",
				Improvement: "You need lead tracking systems",
				ToolSuggestions: []string{
					"Customer relationship management platforms",
					"Comprehensive CRM systems",
					"Sales pipeline management tools",
				},
				ActionStep: "Set up a simple system to track your key business metrics. This will help you make better decisions.",
			},
		},
	},
	model.ToolMarketing: {
		Tool: model.ToolMarketing,
		Categories: []Category{
			{
				Name:        "Marketing Analytics",
				Keywords:    []string{"ads", "emails", "working", "digital tools", "find you", "marketing"},
				Strength:    "You have effective marketing tracking",
				Improvement: "You need marketing analytics",
				ToolSuggestions: []string{
					"Website performance tracking tools",
					"Email marketing campaign platforms",
					"Social media management systems",
				},
				ActionStep: "Start tracking which marketing efforts bring in the most customers. This will help you spend your money wisely.",
			},
			{
				Name:        "Customer Feedback",
				Keywords:    []string{"feedback", "reviews", "customers", "complaining", "saying"},
				Strength:    "You have strong customer feedback systems",
				Improvement: "You need better customer feedback",
				ToolSuggestions: []string{
					"Customer feedback collection tools",
					"Interactive survey platforms",
					"Customer support systems",
				},
				ActionStep: "Ask one customer each week for their honest opinion. This will help you improve your business.",
			},
			{
				Name:        "Pricing Strategy",
				Keywords:    []string{"prices", "charge", "pricing", "others charge"},
				Strength:    "You have good pricing strategy",
				Improvement: "You need better pricing strategy",
				ToolSuggestions: []string{
					"Competitor analysis tools",
					"Price optimization software",
					"Market research platforms",
				},
				ActionStep: "Review your pricing strategy and costs. Understanding your numbers will help you price for profit.",
			},
			{
				Name: "Brand Management",
				// "customers" also appears under Customer Feedback, which wins.
				Keywords:    []string{"brand", "message", "customers", "clear", "consistent", "best customers"},
				Strength:    "You have clear brand management",
				Improvement: "You need better brand management",
				ToolSuggestions: []string{
					"Professional marketing material creation tools",
					"Social media scheduling platforms",
					"Brand monitoring systems",
				},
				ActionStep: "Write down who your best customers are and what they like. This will help you find more customers like them.",
			},
		},
	},
	model.ToolCashFlow: {
		Tool: model.ToolCashFlow,
		Categories: []Category{
			{
				Name:        "Profit Tracking",
				Keywords:    []string{"profit", "income", "expenses"},
				Strength:    "You have good profit tracking",
				Improvement: "You need better profit tracking",
				ToolSuggestions: []string{
					"Comprehensive financial tracking platforms",
					"Free accounting and invoicing tools",
					"Small business accounting software",
				},
				ActionStep: "Start tracking your monthly income and expenses. This will help you understand your profit margins better.",
			},
			{
				Name:        "Financial Planning",
				Keywords:    []string{"money", "funding", "planning"},
				Strength:    "You have good financial planning",
				Improvement: "You need better financial planning",
				ToolSuggestions: []string{
					"Business planning platforms",
					"Financial forecasting tools",
					"Cash flow management systems",
				},
				ActionStep: "Start tracking your monthly income and expenses. This will help you plan for the future.",
			},
			{
				Name:        "Expense Management",
				Keywords:    []string{"costs", "expenses", "track"},
				Strength:    "You have good expense management",
				Improvement: "You need better expense management",
				ToolSuggestions: []string{
					"Cloud-based financial management platforms",
					"Budget tracking tools",
					"Financial data integration systems",
				},
				ActionStep: "Start saving a small amount each month for unexpected expenses. Even $50 a month adds up quickly.",
			},
			{
				Name:        "Sales Goals",
				Keywords:    []string{"sales", "goals", "target"},
				Strength:    "You have good sales goal setting",
				Improvement: "You need better sales goal setting",
				ToolSuggestions: []string{
					"Sales tracking software",
					"Goal setting platforms",
					"Performance monitoring tools",
				},
				ActionStep: "Set clear monthly goals for your business. This will help you stay focused and measure progress.",
			},
		},
	},
}
