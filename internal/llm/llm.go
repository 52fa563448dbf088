// Package llm provides the model backend clients. Each backend implements
// Responder, the single-exchange contract the agent loop drives: one system
// context and one user message in, raw model text out. Interpreting that
// text is the caller's concern.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GenAICloudDevOps/clio-ai/internal/config"
)

// Responder is the minimal surface a model backend exposes.
type Responder interface {
	Ask(ctx context.Context, system, user string) (string, error)
}

// NewResponder builds the client for cfg.Provider. Providers that need an
// API key fail here, before any request is made, so a missing key surfaces
// as a clear startup error rather than a failed round.
func NewResponder(ctx context.Context, cfg config.Config, logger *slog.Logger) (Responder, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
		}
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.Timeout, logger)
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
		}
		return NewGroqClient(cfg.GroqAPIKey, cfg.Model, "", cfg.Timeout, logger), nil
	case "ollama":
		return NewOllamaClient(cfg.OllamaURL, cfg.Model, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
