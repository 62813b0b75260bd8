// Package llm wraps the language-model backends used for report narratives.
package llm

import "context"

// Provider generates text from a prompt.
type Provider interface {
	// Generate sends the request and returns the model output. Errors are
	// one of the typed errors in this package.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the short backend name, e.g. "openai".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation; narratives send a single user message.
	Messages []Message

	// JSON asks the backend for a JSON object response where supported.
	JSON bool

	MaxTokens   int
	Temperature float32
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model output.
type Response struct {
	Content string
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
