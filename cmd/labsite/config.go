package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: `Show the effective configuration or where the config file lives.

Values are resolved in order: built-in defaults, the config file,
LABSITE_* environment variables (and .env), then command-line flags.

Usage:
  labsite config show           # Effective configuration
  labsite config show --human   # As YAML
  labsite config path           # Config file location`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig(config.Overrides{ORCIDID: orcidIDFlag})

	if humanOutput {
		data, err := cfg.Marshal()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		fmt.Print(string(data))
		return nil
	}
	return outputJSON(ConfigResponse{
		ORCIDID:         cfg.ORCIDID,
		ORCIDURL:        cfg.ORCIDURL,
		MetadataURL:     cfg.MetadataURL,
		MaxPublications: cfg.MaxPublications,
		BatchSize:       cfg.BatchSize,
		RequestTimeout:  cfg.RequestTimeout.String(),
		LogLevel:        cfg.LogLevel,
		UserAgent:       cfg.UserAgent,
	})
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := config.GlobalConfigPath()
	status := "missing"
	if _, err := os.Stat(path); err == nil {
		status = "exists"
	}

	if humanOutput {
		fmt.Println(path)
		if status == "missing" {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		return nil
	}
	return outputJSON(StatusResponse{Status: status, Path: path})
}
