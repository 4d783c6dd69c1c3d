package llm

import (
	"context"
	"fmt"

	"github.com/aiforhelp/carebot/internal/config"
	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/pkg/log"
)

// NewProvider creates the appropriate ModelProvider based on configuration.
func NewProvider(ctx context.Context, provider string, cfg *config.ProviderConfig) (core.ModelProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", cfg.Model).
		Msg("starting model provider")

	switch provider {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model), nil
	case "openrouter":
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model), nil
	case "custom":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    cfg.CustomBaseURL,
			APIKey:     cfg.CustomAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", provider)
	}
}
