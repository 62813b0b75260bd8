package model

// Phase is a business life-cycle stage from the phase assessment
type Phase string

const (
	PhasePlanning      Phase = "Planning"
	PhaseLaunch        Phase = "Launch"
	PhaseStabilization Phase = "Stabilization"
	PhaseEstablished   Phase = "Established"
	PhaseIntegration   Phase = "Integration"
)

// PhaseResult is the classified phase for a set of phase answers
type PhaseResult struct {
	Phase       Phase   `json:"phase"`
	YesCount    int     `json:"yesCount"`
	Description string  `json:"description"`
	NextStep    string  `json:"nextStep"`
	Progress    float64 `json:"progress"` // 0-100 position on the phase track
}

// PhaseRequest is the body for POST /v1/phase
type PhaseRequest struct {
	Answers []bool `json:"answers"`
}
