package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/periodica/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → validation → logging → backend.
func NewProvider(ctx context.Context, cfg Config, journal store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	pc := cfg.Selected()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(pc)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(pc)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(pc)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, pc)
	case ProviderMock:
		base = &MockProvider{Synthesize: true}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, journal, logger)
	return WithRetry(WithValidation(logged), cfg.Retry), nil
}
