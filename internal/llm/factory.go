package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/tutor/internal/store"
)

// NewProvider creates a Provider for one credential.
// When eventRepo is non-nil the provider is wrapped with usage logging.
func NewProvider(ctx context.Context, cfg Config, credential string, eventRepo store.EventRepo) (Provider, error) {
	cfg = cfg.WithAPIKey(credential)

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, eventRepo), nil
}

// NewFactory returns a Factory that builds a fresh Provider per credential.
func NewFactory(cfg Config, eventRepo store.EventRepo) Factory {
	return func(ctx context.Context, credential string) (Provider, error) {
		return NewProvider(ctx, cfg, credential, eventRepo)
	}
}
