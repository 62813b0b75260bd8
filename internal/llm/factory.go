package llm

import (
	"context"
	"fmt"

	"nnx1/internal/config"
)

// NewProvider builds the provider selected by cfg. It returns ErrNotConfigured
// when narratives are disabled or no API key can be resolved.
func NewProvider(ctx context.Context, cfg config.NarrativeConfig) (Provider, error) {
	if !cfg.IsEnabled() {
		return nil, ErrNotConfigured
	}
	apiKey := cfg.ResolvedAPIKey()

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(apiKey, cfg.BaseURL, cfg.ResolvedModel())
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, cfg.BaseURL, cfg.ResolvedModel())
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", cfg.Provider)
	}
}
