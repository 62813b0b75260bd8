package model

import "time"

// QuestionnaireResponse is the persisted row for a single recorded answer
type QuestionnaireResponse struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	SessionID    string      `json:"sessionId" bson:"sessionId"`
	UserName     string      `json:"userName" bson:"userName"`
	EmailAddress string      `json:"emailAddress" bson:"emailAddress"`
	PhoneNumber  string      `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Tool         ToolID      `json:"toolId" bson:"toolId"`
	ToolName     string      `json:"toolName" bson:"toolName"`
	QuestionCode string      `json:"questionCode" bson:"questionCode"`
	QuestionText string      `json:"questionText" bson:"questionText"`
	Answer       AnswerValue `json:"answer" bson:"answer"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
}

const (
	AnonymousUserName  = "Anonymous User"
	AnonymousUserEmail = "anonymous@example.com"
)
