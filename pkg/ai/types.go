package ai

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// Generator turns a prompt into a free-text completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Named is implemented by generators that can report their provider and model.
type Named interface {
	Provider() string
	Model() string
}

// ProviderName returns the provider label for the generator, or "unknown".
func ProviderName(g Generator) string {
	if named, ok := g.(Named); ok {
		return named.Provider()
	}
	return "unknown"
}
