package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingGenerator struct {
	calls int
}

func (c *countingGenerator) Generate(context.Context, string) (string, error) {
	c.calls++
	return "ok", nil
}

func TestThrottleSpacesCalls(t *testing.T) {
	inner := &countingGenerator{}
	generator := Throttle(inner, 60*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		output, err := generator.Generate(context.Background(), "p")
		require.NoError(t, err)
		require.Equal(t, "ok", output)
	}

	require.Equal(t, 3, inner.calls)
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestThrottleHonoursCancellation(t *testing.T) {
	inner := &countingGenerator{}
	generator := Throttle(inner, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.Generate(ctx, "p")
	require.Error(t, err)
	require.Zero(t, inner.calls)
}

func TestThrottleDisabledReturnsInner(t *testing.T) {
	inner := &countingGenerator{}
	require.Same(t, inner, Throttle(inner, 0))
}

func TestNewGeneratorSelectsProvider(t *testing.T) {
	generator, err := NewGenerator(context.Background(), ProviderConfig{
		Provider:    "OpenAI",
		OpenAI:      OpenAIConfig{APIKey: "key", Model: "gpt-test"},
		MinInterval: time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, "openai", ProviderName(generator))

	_, err = NewGenerator(context.Background(), ProviderConfig{Provider: "mystery"})
	require.Error(t, err)

	_, err = NewGenerator(context.Background(), ProviderConfig{Provider: "gemini"})
	require.Error(t, err)
}
