package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

type throttledGenerator struct {
	next    Generator
	limiter *rate.Limiter
}

// Throttle spaces calls to the wrapped generator at least interval apart. A non-positive
// interval returns the generator unchanged.
func Throttle(next Generator, interval time.Duration) Generator {
	if interval <= 0 || next == nil {
		return next
	}
	return &throttledGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (t *throttledGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("throttle wait: %w", err)
	}
	return t.next.Generate(ctx, prompt)
}

func (t *throttledGenerator) Provider() string {
	return ProviderName(t.next)
}

func (t *throttledGenerator) Model() string {
	if named, ok := t.next.(Named); ok {
		return named.Model()
	}
	return ""
}
