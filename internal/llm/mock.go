package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Content    string
	Usage      Usage
	StopReason string // StopEnd when empty
	Err        error
}

// MockProvider replays scripted responses in order and records every
// request it receives. It is safe for concurrent use.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

var errScriptExhausted = errors.New("mock: no scripted responses left")

// NewMockProvider returns a provider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{script: responses}
}

// Generate records req and pops the next scripted response. A done ctx
// fails the call without consuming the script.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}

	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	resp := &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: next.StopReason,
	}
	if resp.StopReason == "" {
		resp.StopReason = StopEnd
	}
	return resp, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
