package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider returns queued responses in FIFO order. Used in tests.
type MockProvider struct {
	mu        sync.Mutex
	responses []mockResponse
	Calls     []Request
	Model     string
}

type mockResponse struct {
	resp *Response
	err  error
}

// NewMockProvider creates a mock provider with no queued responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{Model: "mock-model"}
}

// AddResponse queues a successful response with the given content.
func (m *MockProvider) AddResponse(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{
		resp: &Response{Content: content, Model: m.Model, StopReason: "end"},
	})
}

// AddError queues an error response.
func (m *MockProvider) AddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{err: err})
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock provider: no responses queued")
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	return r.resp, r.err
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) ModelID() string {
	return m.Model
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
