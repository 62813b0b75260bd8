package model

import "time"

// Session is one respondent's answer sequence for a single tool
type Session struct {
	ID             string     `json:"id" bson:"_id"`
	Tool           ToolID     `json:"tool" bson:"tool"`
	Name           string     `json:"name,omitempty" bson:"name,omitempty"` // Business or respondent name
	Answers        []Answer   `json:"answers" bson:"answers"`
	EmailSubmitted bool       `json:"emailSubmitted" bson:"emailSubmitted"` // Milestone: report requested by email
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// IsComplete reports whether the session has been finalised.
func (s *Session) IsComplete() bool {
	return s.CompletedAt != nil
}

// StartSessionRequest is the body for POST /v1/sessions
type StartSessionRequest struct {
	Tool string `json:"toolId"`
	Name string `json:"name"`
}

// StartSessionResponse returns the new session and its scoped token
type StartSessionResponse struct {
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

// RecordAnswerRequest is the body for POST /v1/sessions/{id}/answers
type RecordAnswerRequest struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// CompleteSessionResponse carries the evaluation plus peer comparison
type CompleteSessionResponse struct {
	Evaluation *Evaluation     `json:"evaluation"`
	Peers      *PeerComparison `json:"peers,omitempty"`
}
