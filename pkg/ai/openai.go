package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const providerOpenAI = "openai"

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 800
	}

	tracer := otel.Tracer("github.com/noah-isme/mockprep-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "openai_generator").Logger(),
	}, nil
}

// Generate sends the prompt as a single user message and returns the first choice.
func (g *OpenAIGenerator) Generate(parent context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	generationDuration.WithLabelValues(providerOpenAI, g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", g.fail(span, fmt.Errorf("openai generate: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", g.fail(span, fmt.Errorf("openai generate: %w", ErrEmptyCompletion))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", g.fail(span, fmt.Errorf("openai generate: %w", ErrEmptyCompletion))
	}

	g.logger.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("completion received")

	return content, nil
}

func (g *OpenAIGenerator) fail(span trace.Span, err error) error {
	generationFailures.WithLabelValues(providerOpenAI, g.cfg.Model).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Provider reports the provider label.
func (g *OpenAIGenerator) Provider() string {
	return providerOpenAI
}

// Model reports the configured model name.
func (g *OpenAIGenerator) Model() string {
	return g.cfg.Model
}
