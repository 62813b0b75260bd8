package model

// Insight is a templated narrative unit produced by the insight classifier
type Insight struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	ToolSuggestions     []string `json:"toolSuggestions,omitempty"`
	RealWorldScenario   string   `json:"realWorldScenario,omitempty"`
}

// NarrativeInsight is a free-text insight from the narrative path
type NarrativeInsight struct {
	Description string `json:"description"`
}
