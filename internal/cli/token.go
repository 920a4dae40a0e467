package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mockprep-api/internal/middleware"
)

func newTokenCommand() *cobra.Command {
	var (
		secret string
		userID uint
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("MOCKPREP_JWT_SECRET")
			}
			if userID == 0 {
				return errors.New("--user must be a positive id")
			}

			token, err := middleware.IssueToken(secret, userID, role, ttl)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to MOCKPREP_JWT_SECRET)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "user id placed in the sub claim")
	cmd.Flags().StringVarP(&role, "role", "r", middleware.RoleCandidate, "role claim (candidate or admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
