package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/observability"
	"github.com/noah-isme/mockprep-api/internal/scoring"
	"github.com/noah-isme/mockprep-api/pkg/ai"
)

// Evaluation is the graded outcome of a single answer.
type Evaluation struct {
	Feedback string
	Score    float64
	Source   scoring.Source
	Matcher  string
	// Err is set when the generator call failed and the score is provisional.
	Err      error
}

// InterviewCoach asks the text generator for questions and answer evaluations. Neither
// operation fails: upstream problems degrade to deterministic fallback content.
type InterviewCoach interface {
	GenerateQuestions(ctx context.Context, role, level, company string, count int) []string
	EvaluateAnswer(ctx context.Context, question, answer string) Evaluation
}

var errGeneratorMissing = errors.New("text generator not configured")

type interviewCoach struct {
	generator ai.Generator
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewInterviewCoach constructs the coach around the injected generator.
func NewInterviewCoach(generator ai.Generator, timeout time.Duration, logger zerolog.Logger) InterviewCoach {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &interviewCoach{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With().Str("component", "interview_coach").Logger(),
	}
}

func (c *interviewCoach) GenerateQuestions(ctx context.Context, role, level, company string, count int) []string {
	if count < 1 {
		count = 1
	}

	output, err := c.generate(ctx, buildQuestionPrompt(role, level, company, count))
	if err != nil {
		c.logger.Warn().Err(err).Str("role", role).Int("count", count).Msg("question generation failed, serving fallback questions")
		observability.QuestionFallbacks().Inc()
		return fallbackQuestions(role, count)
	}

	questions := splitQuestions(output, count)
	if len(questions) == 0 {
		c.logger.Warn().Str("role", role).Msg("question generation returned no usable lines, serving fallback questions")
		observability.QuestionFallbacks().Inc()
		return fallbackQuestions(role, count)
	}

	return questions
}

func (c *interviewCoach) EvaluateAnswer(ctx context.Context, question, answer string) Evaluation {
	feedback, err := c.generate(ctx, buildEvaluationPrompt(question, answer))
	if err != nil {
		observability.ScoreOutcomes().WithLabelValues(string(scoring.SourceUpstreamFallback), "").Inc()
		return Evaluation{
			Feedback: upstreamFallbackFeedback,
			Score:    scoring.UpstreamFallbackScore,
			Source:   scoring.SourceUpstreamFallback,
			Err:      err,
		}
	}

	result := scoring.Score(feedback, answer)
	observability.ScoreOutcomes().WithLabelValues(string(result.Source), result.Matcher).Inc()

	return Evaluation{
		Feedback: feedback,
		Score:    result.Score,
		Source:   result.Source,
		Matcher:  result.Matcher,
	}
}

func (c *interviewCoach) generate(ctx context.Context, prompt string) (string, error) {
	if c.generator == nil {
		return "", errGeneratorMissing
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.generator.Generate(callCtx, prompt)
}

func splitQuestions(output string, count int) []string {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	questions := make([]string, 0, count)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		questions = append(questions, trimmed)
		if len(questions) == count {
			break
		}
	}
	return questions
}

func truncate(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
