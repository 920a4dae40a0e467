package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProviderConfig selects and configures the generator backend.
type ProviderConfig struct {
	Provider    string
	OpenAI      OpenAIConfig
	Gemini      GeminiConfig
	MinInterval time.Duration
}

// NewGenerator builds the configured provider and applies call throttling.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	var (
		generator Generator
		err       error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", providerOpenAI:
		generator, err = NewOpenAIGenerator(cfg.OpenAI)
	case providerGemini:
		generator, err = NewGeminiGenerator(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return Throttle(generator, cfg.MinInterval), nil
}
