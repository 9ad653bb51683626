package main

import (
	"os"

	"github.com/kubescape/go-logger"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var logLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "installcheck",
	Short:   "Verify a MongoDB server package install on a Linux host",
	Long:    "installcheck runs acceptance checks against a host after the server package was installed: service control, helper tools, files, the service account, process limits and package removal.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
}

// initLogger sends logs to stderr so reports on stdout stay parseable.
func initLogger(level string) error {
	logger.L().SetWriter(os.Stderr)
	return logger.L().SetLevel(level)
}
