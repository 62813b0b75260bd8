package model

// ColorClass is the progress bar color derived from the score thresholds
type ColorClass string

const (
	ColorRed    ColorClass = "red"
	ColorYellow ColorClass = "yellow"
	ColorBlue   ColorClass = "blue"
	ColorGreen  ColorClass = "green"
)

// Tier is the classified achievement level for a score
type Tier struct {
	Level           int        `json:"level"`
	Label           string     `json:"label"`
	Description     string     `json:"description"`
	LongDescription string     `json:"longDescription"`
	Min             int        `json:"min"`
	Max             int        `json:"max"`
	PointsToNext    *int       `json:"pointsToNext"`
	NextLabel       *string    `json:"nextLabel"`
	Color           ColorClass `json:"colorClass"`
}

// MilestoneStep is one step of the respondent journey
type MilestoneStep struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Milestones pairs the per-tool recommendations with journey progress
type Milestones struct {
	Recommendations []string        `json:"recommendations"`
	Steps           []MilestoneStep `json:"steps"`
	PointerIndex    int             `json:"pointerIndex"` // Position on the four-stage progress track
}

// Evaluation is the full deterministic result for a completed answer set
type Evaluation struct {
	Tool             ToolID     `json:"tool"`
	ToolName         string     `json:"toolName"`
	Score            int        `json:"score"`
	YesCount         int        `json:"yesCount"`
	NoCount          int        `json:"noCount"`
	Tier             Tier       `json:"tier"`
	Insights         []Insight  `json:"insights"`
	ScoreMessage     string     `json:"scoreMessage"`
	PerformanceLevel string     `json:"performanceLevel"`
	Milestones       Milestones `json:"milestones"`
	TaxonomyVersion  string     `json:"taxonomyVersion"`
}

// EvaluateRequest is the body for POST /v1/evaluate
type EvaluateRequest struct {
	Tool           string   `json:"toolId"`
	Answers        []Answer `json:"answers"`
	EmailSubmitted bool     `json:"emailSubmitted"`
}
