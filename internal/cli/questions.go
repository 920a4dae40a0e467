package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mockprep-api/internal/config"
	"github.com/noah-isme/mockprep-api/internal/service"
	"github.com/noah-isme/mockprep-api/pkg/ai"
)

func newQuestionsCommand() *cobra.Command {
	var (
		role    string
		level   string
		company string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Generate interview questions with the configured provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := commandLogger(cmd)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			generator, err := ai.NewGenerator(ctx, ai.ProviderConfig{
				Provider: cfg.AIProvider,
				OpenAI:   ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, Logger: logger},
				Gemini:   ai.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
			})
			if err != nil {
				logger.Warn().Err(err).Msg("generator unavailable, printing fallback questions")
				generator = nil
			}

			coach := service.NewInterviewCoach(generator, cfg.GeneratorTimeout, logger)
			for i, question := range coach.GenerateQuestions(ctx, role, level, company, count) {
				cmd.Printf("%d. %s\n", i+1, question)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "target role")
	cmd.Flags().StringVar(&level, "level", "Mid-level", "experience level")
	cmd.Flags().StringVar(&company, "company", "", "target company")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of questions")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
