// Package cli implements prepctl, the operator command line for the interview practice API.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const app = "prepctl"

// Actual version can be specified in build command.
var version = "unknown"

// NewRootCommand assembles the prepctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "prepctl manages the interview practice API: migrations, tokens and scoring checks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	root.AddCommand(
		newMigrateCommand(),
		newScoreCommand(),
		newQuestionsCommand(),
		newTokenCommand(),
		newVersionCommand(),
	)
	return root
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Str("app", app).Logger()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s version: %s\n", app, version)
		},
	}
}
