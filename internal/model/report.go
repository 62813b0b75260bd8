package model

import "time"

// Narrative sources reported by the generate-report path
const (
	SourceFallback           = "intelligent_fallback"
	SourceFallbackAfterError = "fallback_after_error"
)

// GenerateReportRequest is the body for POST /v1/reports/generate
type GenerateReportRequest struct {
	Tool    string   `json:"toolId"`
	Name    string   `json:"name"`
	Answers []Answer `json:"answers"`
}

// GenerateReportResponse is the assembled report for a completed answer set
type GenerateReportResponse struct {
	Success         bool               `json:"success"`
	Evaluation      *Evaluation        `json:"evaluation"`
	Insights        []NarrativeInsight `json:"insights"`
	Content         string             `json:"content"` // Markdown report body
	Source          string             `json:"source"`
	TaxonomyVersion string             `json:"taxonomyVersion"`
}

// DeliveryRequest is the body for POST /v1/reports/send
type DeliveryRequest struct {
	SessionID     string   `json:"sessionId,omitempty"`
	To            string   `json:"to"`
	Name          string   `json:"name"`
	Tool          string   `json:"toolId"`
	ReportContent string   `json:"reportContent"`
	Score         *int     `json:"score"`
	Answers       []Answer `json:"answers"`
}

// DeliveryResult reports the outcome of a delivery attempt
type DeliveryResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PDFAttached bool   `json:"pdfAttached"`
	Simulated   bool   `json:"simulated,omitempty"`
}

// DeliveryStatus tracks a delivery attempt through its stages
type DeliveryStatus string

const (
	DeliveryRendering DeliveryStatus = "rendering"
	DeliverySending   DeliveryStatus = "sending"
	DeliverySent      DeliveryStatus = "sent"
	DeliverySimulated DeliveryStatus = "simulated"
	DeliveryFailed    DeliveryStatus = "failed"
)

// DeliveryRecord is the persisted log entry for a delivery attempt
type DeliveryRecord struct {
	ID          string         `json:"id" bson:"_id"`
	SessionID   string         `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	To          string         `json:"to" bson:"to"`
	Tool        ToolID         `json:"tool" bson:"tool"`
	Score       int            `json:"score" bson:"score"`
	Status      DeliveryStatus `json:"status" bson:"status"`
	Message     string         `json:"message" bson:"message"`
	PDFAttached bool           `json:"pdfAttached" bson:"pdfAttached"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}
