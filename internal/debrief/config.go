package debrief

import "time"

// Config holds report generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for report generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.7,
		Timeout:     20 * time.Second,
	}
}
