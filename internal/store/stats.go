package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

// GameStats aggregates finished games.
type GameStats struct {
	Games        int
	Victories    int
	TimeUps      int
	Quits        int
	BestScore    int
	AvgScore     float64
	CluesUsed    int
	WrongAnswers int
	ByDifficulty map[string]int
}

func finished(action string) bool {
	return action == SessionVictory || action == SessionQuit || action == SessionTimeUp
}

// GameStats summarizes every session that reached an end.
func (j *Journal) GameStats(ctx context.Context) (*GameStats, error) {
	events, err := j.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	st := &GameStats{ByDifficulty: make(map[string]int)}
	scored, total := 0, 0
	for _, e := range events {
		if !finished(e.Action) {
			continue
		}
		st.Games++
		st.ByDifficulty[e.Difficulty]++
		st.CluesUsed += e.CluesUsed
		st.WrongAnswers += e.WrongAttempts
		switch e.Action {
		case SessionVictory:
			st.Victories++
			scored++
			total += e.Score
			st.BestScore = max(st.BestScore, e.Score)
		case SessionTimeUp:
			st.TimeUps++
		case SessionQuit:
			st.Quits++
		}
	}
	if scored > 0 {
		st.AvgScore = float64(total) / float64(scored)
	}
	return st, nil
}

// ElementAccuracy is the answer record for one element.
type ElementAccuracy struct {
	Element string
	Correct int
	Wrong   int
}

// Accuracy is the share of correct answers, 0 when unanswered.
func (e ElementAccuracy) Accuracy() float64 {
	n := e.Correct + e.Wrong
	if n == 0 {
		return 0
	}
	return float64(e.Correct) / float64(n)
}

// HardestElements returns elements ordered by wrong answers, most first.
func (j *Journal) HardestElements(ctx context.Context, limit int) ([]ElementAccuracy, error) {
	events, err := j.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*ElementAccuracy)
	for _, e := range events {
		acc, ok := byName[e.Element]
		if !ok {
			acc = &ElementAccuracy{Element: e.Element}
			byName[e.Element] = acc
		}
		if e.Correct {
			acc.Correct++
		} else {
			acc.Wrong++
		}
	}

	out := make([]ElementAccuracy, 0, len(byName))
	for _, acc := range byName {
		out = append(out, *acc)
	}
	slices.SortFunc(out, func(a, b ElementAccuracy) int {
		return cmp.Or(cmp.Compare(b.Wrong, a.Wrong), cmp.Compare(a.Element, b.Element))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LLMUsage aggregates LLM calls under one key.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

func (j *Journal) llmUsage(ctx context.Context, key func(LLMRequestEvent) (purpose, model string)) ([]LLMUsage, error) {
	events, err := j.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}

	type acc struct {
		LLMUsage
		latency int64
	}
	groups := make(map[[2]string]*acc)
	for _, e := range events {
		p, m := key(e)
		g, ok := groups[[2]string{p, m}]
		if !ok {
			g = &acc{LLMUsage: LLMUsage{Purpose: p, Model: m}}
			groups[[2]string{p, m}] = g
		}
		g.Calls++
		g.InputTokens += e.InputTokens
		g.OutputTokens += e.OutputTokens
		g.latency += e.LatencyMs
	}

	out := make([]LLMUsage, 0, len(groups))
	for _, g := range groups {
		g.AvgLatencyMs = g.latency / int64(g.Calls)
		out = append(out, g.LLMUsage)
	}
	slices.SortFunc(out, func(a, b LLMUsage) int {
		return cmp.Or(cmp.Compare(a.Purpose, b.Purpose), cmp.Compare(a.Model, b.Model))
	})
	return out, nil
}

// LLMUsageByPurpose groups LLM calls by purpose.
func (j *Journal) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return j.llmUsage(ctx, func(e LLMRequestEvent) (string, string) { return e.Purpose, "" })
}

// LLMUsageByModel groups LLM calls by model.
func (j *Journal) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return j.llmUsage(ctx, func(e LLMRequestEvent) (string, string) { return "", e.Model })
}

// GameDebrief is a won game and the LLM calls made for its report.
type GameDebrief struct {
	SessionID    string
	Finished     time.Time
	Difficulty   string
	Score        int
	Calls        int
	Failed       int
	InputTokens  int
	OutputTokens int
	// Model is the model of the latest call.
	Model string
}

// GameDebriefs lists won games, newest first, with the LLM calls tagged
// with their session. A game played without a provider has zero calls.
func (j *Journal) GameDebriefs(ctx context.Context, limit int) ([]GameDebrief, error) {
	sessions, err := j.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}
	calls, err := j.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	bySession := make(map[string][]LLMRequestEvent)
	for _, c := range calls {
		if c.SessionID != "" {
			bySession[c.SessionID] = append(bySession[c.SessionID], c)
		}
	}

	var out []GameDebrief
	for _, e := range sessions {
		if e.Action != SessionVictory {
			continue
		}
		g := GameDebrief{
			SessionID:  e.SessionID,
			Finished:   e.Timestamp,
			Difficulty: e.Difficulty,
			Score:      e.Score,
		}
		// Calls are newest first, so the first one names the model.
		for i, c := range bySession[e.SessionID] {
			if i == 0 {
				g.Model = c.Model
			}
			g.Calls++
			if !c.Success {
				g.Failed++
			}
			g.InputTokens += c.InputTokens
			g.OutputTokens += c.OutputTokens
		}
		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
