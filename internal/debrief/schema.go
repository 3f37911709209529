package debrief

import "github.com/abhisek/periodica/internal/llm"

// Schema defines the JSON schema of a generated report.
var Schema = &llm.Schema{
	Name:        "game-debrief",
	Description: "A short report on a finished chemistry escape room game",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short headline for the report (3-8 words, Italian)",
				"minLength":   1,
			},
			"report": map[string]any{
				"type":        "string",
				"description": "Two or three sentences in Italian commenting on the player's game",
				"minLength":   1,
			},
		},
		"required":             []any{"title", "report"},
		"additionalProperties": false,
	},
}
