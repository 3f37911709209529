package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider returns canned responses in FIFO order and records every
// request. With an empty queue it either fails with
// ErrProviderUnavailable or, when Synthesize is set, builds a placeholder
// document from the request schema.
type MockProvider struct {
	mu         sync.Mutex
	responses  []MockResponse
	Calls      []Request
	Synthesize bool
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.responses) > 0:
		next = m.responses[0]
		m.responses = m.responses[1:]
	case m.Synthesize:
		next = MockResponse{Content: placeholder(req.Schema)}
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      ProviderMock,
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return ProviderMock
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

// placeholder fills every string property of an object schema with a
// fixed text. Without a schema it returns a JSON string.
func placeholder(schema *Schema) json.RawMessage {
	if schema == nil {
		return json.RawMessage(`"mock"`)
	}
	doc := map[string]any{}
	props, _ := schema.Definition["properties"].(map[string]any)
	for name, def := range props {
		m, _ := def.(map[string]any)
		typ, _ := m["type"].(string)
		switch typ {
		case "integer", "number":
			doc[name] = 0
		case "boolean":
			doc[name] = false
		default:
			doc[name] = "mock " + name
		}
	}
	b, _ := json.Marshal(doc)
	return b
}
