package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mockprep-api/internal/config"
	"github.com/noah-isme/mockprep-api/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the interview session tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := commandLogger(cmd)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}

			logger.Info().Str("driver", cfg.DatabaseDriver).Msg("migrations applied")
			return nil
		},
	}
}
