package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledger-core/config"
)

func parseLogLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// setupLogging configures the global logger and returns a function that
// releases the log file, if one was opened.
func setupLogging(cfg *config.Config) func() {
	closeLog := func() {}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logrus.SetOutput(file)
			closeLog = func() { file.Close() }
		} else {
			logrus.Warnf("Failed to open log file %s: %v", cfg.LogFile, err)
		}
	}

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetLevel(parseLogLevel(cfg.LogLevel))
	return closeLog
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	closeLog := func() {}

	rootCmd := &cobra.Command{
		Use:           "genesis [command]",
		Short:         "Builds and inspects the genesis block of a ledger network",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			closeLog = setupLogging(cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			closeLog()
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.Network, "network", "n", cfg.Network, "Network whose parameters are used (main, test, regtest)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newBuildCmd(cfg),
		newAddressCmd(cfg),
		newDeriveCmd(cfg),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
