// Package main provides the labsite CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/labsite/internal/config"
	"github.com/matsen/labsite/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	logJSON     bool
	logLevel    string
	orcidIDFlag string

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "Publication list builder for the lab website",
	Long: `labsite builds the lab's publication list.

It fetches the works of an ORCID record, enriches them with author lists and
volume/issue/page data from OA.Works, keeps the newest entries, groups them
by year and attaches a BibTeX citation to each.

All commands output JSON by default.
Use --human for human-readable output.

Environment Variables (also read from .env):
  LABSITE_ORCID_ID          ORCID iD whose works are listed
  LABSITE_ORCID_URL         ORCID public API base URL
  LABSITE_METADATA_URL      OA.Works metadata endpoint
  LABSITE_MAX_PUBLICATIONS  Number of publications kept
  LABSITE_BATCH_SIZE        Concurrent metadata lookups per batch
  LABSITE_REQUEST_TIMEOUT   Per-lookup timeout (e.g. 15s)
  LABSITE_LOG_LEVEL         debug, info, warn or error`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(resolveLogLevel(), logJSON)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Load .env file if present (for LABSITE_* settings)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs to stderr as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&orcidIDFlag, "orcid", "", "ORCID iD to list (overrides config)")
	rootCmd.Version = Version
}

// resolveLogLevel picks the log level from the flag, the environment, or
// the config file, in that order.
func resolveLogLevel() string {
	if logLevel != "" {
		return logLevel
	}
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		return v
	}
	if cfg, err := config.LoadGlobalConfig(); err == nil {
		return cfg.LogLevel
	}
	return config.DefaultLogLevel
}
