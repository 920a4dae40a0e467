package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	providerGemini     = "gemini"
	defaultGeminiModel = "gemini-1.5-flash"
)

// GeminiConfig defines configuration options for the Gemini generator.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiGenerator wraps the Google GenAI client for prompt-based completions.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
	tracer    trace.Tracer
}

// NewGeminiGenerator creates a generator configured for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiGenerator{
		client:    client,
		modelName: model,
		tracer:    otel.Tracer("github.com/noah-isme/mockprep-api/pkg/ai/gemini"),
	}, nil
}

// Generate sends the prompt to Gemini and joins the textual parts of every candidate.
func (g *GeminiGenerator) Generate(parent context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	ctx, span := g.tracer.Start(parent, "gemini.generate", trace.WithAttributes(
		attribute.String("model", g.modelName),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	generationDuration.WithLabelValues(providerGemini, g.modelName).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", g.fail(span, fmt.Errorf("gemini generate: %w", err))
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", g.fail(span, fmt.Errorf("gemini generate: %w", ErrEmptyCompletion))
	}

	return output, nil
}

func (g *GeminiGenerator) fail(span trace.Span, err error) error {
	generationFailures.WithLabelValues(providerGemini, g.modelName).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Provider reports the provider label.
func (g *GeminiGenerator) Provider() string {
	return providerGemini
}

// Model reports the configured model name.
func (g *GeminiGenerator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
