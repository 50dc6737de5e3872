package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/lexkit/case-cli/internal/config"
)

// NewService creates the configured completion-service backend.
func NewService(ctx context.Context, cfg config.LLMConfig) (Service, error) {
	switch cfg.Backend {
	case "gemini", "":
		return NewGeminiService(ctx, cfg.GeminiAPIKey)
	case "anthropic":
		return NewAnthropicService(cfg.AnthropicAPIKey)
	default:
		return nil, eris.Errorf("llm: unknown backend %q (supported: gemini, anthropic)", cfg.Backend)
	}
}

// NewResolverFromConfig builds a session resolver over the configured
// backend.
func NewResolverFromConfig(ctx context.Context, cfg config.LLMConfig) (*Resolver, Service, error) {
	svc, err := NewService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	resolver := NewResolver(svc, ResolverOptions{
		PerCandidateTimeout: cfg.Timeout(),
		RequestsPerMinute:   cfg.RequestsPerMinute,
	})
	return resolver, svc, nil
}
