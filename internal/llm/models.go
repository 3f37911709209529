package llm

// ModelCost holds per-million-token pricing in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// Aliases per provider. Unknown names pass through as model IDs.
var (
	anthropicModels = map[string]string{
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
	}
	openaiModels = map[string]string{
		"gpt-mini": "gpt-4o-mini",
		"gpt":      "gpt-4o",
	}
	geminiModels = map[string]string{
		"gemini-flash": "gemini-2.5-flash",
		"gemini-lite":  "gemini-2.5-flash-lite",
	}
)

var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},
	"gpt-4o":                     {2.5, 10},
	"gpt-4o-mini":                {0.15, 0.6},
	"gpt-4.1-mini":               {0.4, 1.6},
	"gemini-2.5-flash":           {0.3, 2.5},
	"gemini-2.5-flash-lite":      {0.1, 0.4},
	"gemini-2.0-flash":           {0.1, 0.4},
}

// resolveModel maps an alias to a provider model ID.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}
