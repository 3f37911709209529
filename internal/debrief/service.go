package debrief

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/periodica/internal/badges"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/llm"
)

// Service writes end-of-game reports. A nil provider always yields the
// fallback.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a report writer.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether reports come from an LLM.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type reportOutput struct {
	Title  string `json:"title"`
	Report string `json:"report"`
}

// Write returns a generated report. On failure it returns the fallback
// together with the error, so callers can always show something.
func (s *Service) Write(ctx context.Context, in Input) (*Report, error) {
	if !s.Enabled() {
		return Fallback(in), nil
	}

	ctx = llm.WithPurpose(ctx, "debrief")
	if in.SessionID != "" {
		ctx = llm.WithSession(ctx, in.SessionID)
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Fallback(in), fmt.Errorf("debrief generation: %w", err)
	}

	var out reportOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Fallback(in), fmt.Errorf("parse debrief response: %w", err)
	}

	return &Report{Title: out.Title, Body: out.Report, Generated: true}, nil
}

// Fallback builds the offline report from the badge and the counters.
func Fallback(in Input) *Report {
	tier := badges.ForScore(in.Score)
	return &Report{
		Title: tier.Icon() + " " + tier.Title(),
		Body:  i18n.T("DEBRIEF_FALLBACK", len(in.Rooms), in.Stats.CluesUsed, in.Stats.WrongAttempts),
	}
}
