// Package root contains the root command for the mandate-scan CLI.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"upisubs/mandate-scan/internal/config"
	"upisubs/mandate-scan/internal/export"
	"upisubs/mandate-scan/internal/logging"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "mandate-scan",
		Short: "Scan bank SMS exports for UPI AutoPay subscription mandates.",
		Long: `mandate-scan extracts UPI AutoPay mandates from bank SMS messages.
It reads SMS Backup & Restore XML exports, detects mandate creation, debit
and revocation messages, and resolves them into the current subscription
list, optionally exported as CSV.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to mandate-scan!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			// Route every engine package through the configured logger.
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			if cfg.CSV.Delimiter != "" {
				export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}
)
