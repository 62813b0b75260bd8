package model

// QuestionStat is the per-question aggregate for a tool
type QuestionStat struct {
	QuestionCode  string  `json:"questionToken"`
	QuestionText  string  `json:"questionText"`
	YesPercentage float64 `json:"yesPercentage"`
	TotalAnswers  int     `json:"totalAnswers"`
}

// ToolAnalytics aggregates every stored response for one tool
type ToolAnalytics struct {
	Tool              ToolID         `json:"tool"`
	TotalSessions     int            `json:"totalSessions"`
	CompletedSessions int            `json:"completedSessions"`
	AverageYesAnswers float64        `json:"averageYesAnswers"` // Percentage of all answers that were Yes
	QuestionStats     []QuestionStat `json:"questionStats"`
}

// SessionSummary is the stored view of one session's responses
type SessionSummary struct {
	TotalQuestions    int                      `json:"totalQuestions"`
	AnsweredQuestions int                      `json:"answeredQuestions"`
	YesAnswers        int                      `json:"yesAnswers"`
	NoAnswers         int                      `json:"noAnswers"`
	Tool              ToolID                   `json:"tool"`
	UserName          string                   `json:"userName"`
	Email             string                   `json:"email"`
	Responses         []*QuestionnaireResponse `json:"responses"`
}

// YesNoPercent is the share of Yes and No answers for one question position
type YesNoPercent struct {
	Yes float64 `json:"yes"`
	No  float64 `json:"no"`
}

// PeerComparison compares a score to completed sessions of the same tool
type PeerComparison struct {
	Average int    `json:"average"`
	Count   int64  `json:"count"`
	Rank    int64  `json:"rank,omitempty"`
	Text    string `json:"text"`
}
