package model

import (
	"fmt"
	"strings"
)

// AnswerValue is a yes/no response
type AnswerValue string

const (
	AnswerYes AnswerValue = "Yes"
	AnswerNo  AnswerValue = "No"
)

// ParseAnswerValue accepts Yes/No in any case, plus y/n and true/false.
func ParseAnswerValue(s string) (AnswerValue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return AnswerYes, nil
	case "no", "n", "false":
		return AnswerNo, nil
	}
	return "", fmt.Errorf("invalid answer %q", s)
}

// Valid reports whether v is Yes or No.
func (v AnswerValue) Valid() bool {
	return v == AnswerYes || v == AnswerNo
}

// Answer is a single recorded response to a question
type Answer struct {
	QuestionID   string      `json:"questionId" bson:"questionId"`
	QuestionText string      `json:"questionText" bson:"questionText"`
	Answer       AnswerValue `json:"answer" bson:"answer"`
}

// IsYes reports whether the answer is affirmative.
func (a Answer) IsYes() bool {
	return a.Answer == AnswerYes
}
