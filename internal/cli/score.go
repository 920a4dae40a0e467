package cli

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mockprep-api/internal/scoring"
)

type scoreOutput struct {
	Score   float64 `json:"score"`
	Source  string  `json:"source"`
	Matcher string  `json:"matcher,omitempty"`
	Region  string  `json:"region,omitempty"`
}

// newScoreCommand runs score extraction offline, useful when tuning prompts against saved feedback.
func newScoreCommand() *cobra.Command {
	var (
		feedback string
		answer   string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Extract a score from evaluator feedback (reads stdin when --feedback is empty)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if feedback == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				feedback = string(raw)
			}
			if strings.TrimSpace(feedback) == "" {
				return errors.New("feedback is empty")
			}

			result := scoring.Score(feedback, answer)
			region, _ := scoring.DelimitedRegion(feedback)

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(scoreOutput{
				Score:   result.Score,
				Source:  string(result.Source),
				Matcher: result.Matcher,
				Region:  region,
			})
		},
	}

	cmd.Flags().StringVarP(&feedback, "feedback", "f", "", "evaluator feedback text")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "candidate answer, used by the length fallback")
	return cmd
}
