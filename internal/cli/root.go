// Package cli implements the sajilo command-line client. Each subcommand
// drives the same session and routing core the web frontend embeds, against a
// running SajiloKaam backend (production or the local stub).
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sajilokaam/client-core/internal/infrastructure/config"
	"github.com/sajilokaam/client-core/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sajilo",
	Short: "SajiloKaam marketplace client",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is the normal case outside local dev.
		_ = godotenv.Load()

		cfg = config.Load()
		logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
