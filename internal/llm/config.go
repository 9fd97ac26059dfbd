package llm

import (
	"fmt"
	"os"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
)

// Config holds all backend configuration. API keys are not read from the
// environment here; the credential chain supplies them per submission.
type Config struct {
	// Provider selects which backend to use.
	// Values: "gemini", "openai", "anthropic", "openrouter"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // Optional. Override for proxies and tests.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		OpenRouter: OpenRouterConfig{
			BaseURL: defaultOpenRouterBaseURL,
		},
	}
}

// ConfigFromEnv overlays environment variables on cfg.
func ConfigFromEnv(cfg Config) Config {
	if p := os.Getenv("TUTOR_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if u := os.Getenv("TUTOR_GEMINI_BASE_URL"); u != "" {
		cfg.Gemini.BaseURL = u
	}
	if u := os.Getenv("TUTOR_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if u := os.Getenv("TUTOR_ANTHROPIC_BASE_URL"); u != "" {
		cfg.Anthropic.BaseURL = u
	}
	if u := os.Getenv("TUTOR_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}
	return cfg
}

// WithAPIKey returns a copy of c with the selected provider's key set.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	}
	return c
}

// Validate checks that the selected provider is known.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

// APIKeyEnvVars returns the environment variables that may hold a key for
// provider, most specific first.
func APIKeyEnvVars(provider string) []string {
	switch provider {
	case ProviderGemini:
		return []string{"TUTOR_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case ProviderOpenAI:
		return []string{"TUTOR_OPENAI_API_KEY", "OPENAI_API_KEY"}
	case ProviderAnthropic:
		return []string{"TUTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}
	case ProviderOpenRouter:
		return []string{"TUTOR_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}
	default:
		return nil
	}
}
