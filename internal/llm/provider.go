// Package llm wraps the hosted language model providers behind one
// Provider interface. Decorators add schema validation, retries and
// journaling.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a completion for a request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON in that shape. The
	// validating decorator rejects content that does not conform.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
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

// Schema defines the JSON structure expected back.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "lab-debrief".
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// User builds a single-turn request.
func User(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
