package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It serves a fixed model list, returns canned responses in FIFO order and
// records all requests.
type MockProvider struct {
	mu        sync.Mutex
	models    []ModelDescriptor
	listErr   error
	responses []MockResponse
	listCalls int
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// WithModels sets the model list returned by ListModels.
func (m *MockProvider) WithModels(models ...ModelDescriptor) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = models
	return m
}

// WithListError makes ListModels fail with err.
func (m *MockProvider) WithListError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
	return m
}

// Name returns "mock".
func (m *MockProvider) Name() string {
	return "mock"
}

// ListModels returns the configured model list or error.
func (m *MockProvider) ListModels(_ context.Context) ([]ModelDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]ModelDescriptor, len(m.models))
	copy(out, m.models)
	return out, nil
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      req.Model,
		StopReason: "end",
	}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ListCallCount returns the number of ListModels calls made.
func (m *MockProvider) ListCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// MockFactory returns a Factory that always hands out p and records the
// credentials it was called with.
func MockFactory(p Provider, seen *[]string) Factory {
	var mu sync.Mutex
	return func(_ context.Context, credential string) (Provider, error) {
		if seen != nil {
			mu.Lock()
			*seen = append(*seen, credential)
			mu.Unlock()
		}
		return p, nil
	}
}
