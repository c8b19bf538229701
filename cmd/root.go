package cmd

import (
	"os"

	"collab-notifier/infrastructure/configuration"
	"collab-notifier/infrastructure/logger"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "collab-notifier",
	Short: "Announce VTuber collaboration videos",
	Long: `collab-notifier crawls VTuber listing sites, stores every new video it finds
and posts a notification when a video involves two or more registered channels.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load env from files (non-destructive; OS env still has precedence)
		configuration.LoadEnvFromFile("config.env", ".env")
		configuration.Reload()
		if name, _ := cmd.Flags().GetString("log-level"); name != "" {
			level, err := log.ParseLevel(name)
			if err != nil {
				logger.GetLogger().WithField("error", err).Warn("Ignoring invalid log level")
				return
			}
			logger.SetLevel(level)
		}
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}
