package llm

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// EnvPrefix prefixes every environment variable read by ConfigFromEnv.
const EnvPrefix = "PERIODICA_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: anthropic, openai, gemini, openrouter
	// or mock.
	Provider string

	Providers map[string]ProviderConfig
	Retry     RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// ProviderConfig holds the credentials and model of one backend.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Providers: map[string]ProviderConfig{
			ProviderAnthropic:  {Model: "claude-haiku"},
			ProviderOpenAI:     {Model: "gpt-mini"},
			ProviderGemini:     {Model: "gemini-flash"},
			ProviderOpenRouter: {Model: "google/gemini-2.5-flash"},
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Selected returns the configuration of the chosen provider.
func (c Config) Selected() ProviderConfig {
	return c.Providers[c.Provider]
}

// WithModel overrides the model of the chosen provider. Empty is a no-op.
func (c Config) WithModel(model string) Config {
	if model == "" {
		return c
	}
	providers := maps.Clone(c.Providers)
	if providers == nil {
		providers = make(map[string]ProviderConfig, 1)
	}
	pc := providers[c.Provider]
	pc.Model = model
	providers[c.Provider] = pc
	c.Providers = providers
	return c
}

func envName(provider, key string) string {
	return EnvPrefix + strings.ToUpper(provider) + "_" + key
}

// ConfigFromEnv builds a Config from PERIODICA_LLM_PROVIDER and the
// PERIODICA_<PROVIDER>_{API_KEY,MODEL,BASE_URL} variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv(EnvPrefix + "LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	for name, pc := range cfg.Providers {
		if v := os.Getenv(envName(name, "API_KEY")); v != "" {
			pc.APIKey = v
		}
		if v := os.Getenv(envName(name, "MODEL")); v != "" {
			pc.Model = v
		}
		if v := os.Getenv(envName(name, "BASE_URL")); v != "" {
			pc.BaseURL = v
		}
		cfg.Providers[name] = pc
	}
	return cfg
}

// discoveryOrder lists the vendor API key variables probed by
// DiscoverConfig, in priority order.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig returns a Config for the first vendor API key variable
// found in the environment.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg.Provider = d.provider
		pc := cfg.Providers[d.provider]
		pc.APIKey = k
		cfg.Providers[d.provider] = pc
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("%s is required for the %s provider", envName(c.Provider, "API_KEY"), c.Provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
