package model

// Question is one immutable yes/no prompt of a tool's question bank
type Question struct {
	ID   string `json:"id" bson:"id"`
	Code string `json:"code" bson:"code"` // Static per-tool-per-index code, e.g. DH004
	Text string `json:"text" bson:"text"`
}
