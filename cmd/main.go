package main

import (
	"os"

	"github.com/spf13/cobra"

	"walkwatch/internal/app"
	"walkwatch/internal/logger"
	"walkwatch/internal/version"
)

var (
	// configPath overrides the default settings file location.
	configPath string
	// logLevel selects the minimum log level.
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "walkwatch",
		Short: "Periodic walk reminders that pause while you are away.",
		Long: `walkwatch runs in the system tray and counts down to a walk reminder.

It samples time-since-last-input once a second: when you appear idle it asks
whether you are still there before pausing the countdown, and a confirmed
absence counts as the break itself.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
			return app.Run(app.Options{ConfigPath: configPath})
		},
	}
)

func main() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to settings file (defaults to the user config dir)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
}
