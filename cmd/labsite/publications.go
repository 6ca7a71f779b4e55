package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/labsite/internal/config"
)

var (
	pubsBibtex    bool
	pubsOut       string
	pubsMax       int
	pubsBatchSize int
)

func init() {
	publicationsCmd.Flags().BoolVar(&pubsBibtex, "bibtex", false, "Output BibTeX entries only")
	publicationsCmd.Flags().StringVarP(&pubsOut, "out", "o", "", "Write output to FILE instead of stdout")
	publicationsCmd.Flags().IntVar(&pubsMax, "max", 0, "Number of publications to keep, 0 for all (overrides config)")
	publicationsCmd.Flags().IntVar(&pubsBatchSize, "batch-size", 0, "Concurrent metadata lookups per batch (overrides config)")
	rootCmd.AddCommand(publicationsCmd)
}

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pubs"},
	Short:   "Build the grouped publication list",
	Long: `Fetch the ORCID works, enrich them with OA.Works metadata, keep the newest
entries, and print them grouped by year with a BibTeX citation each.

Examples:
  labsite publications
  labsite pubs --human
  labsite pubs --bibtex -o publications.bib
  labsite pubs --orcid 0000-0002-1825-0097 --max 30`,
	Args: cobra.NoArgs,
	RunE: runPublications,
}

func runPublications(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig(config.Overrides{
		ORCIDID:         orcidIDFlag,
		MaxPublications: changedInt(cmd, "max", pubsMax),
		BatchSize:       changedInt(cmd, "batch-size", pubsBatchSize),
	})

	ctx, cancel := commandContext()
	defer cancel()

	result, err := newPipeline(cfg).Run(ctx)
	if err != nil {
		logger.Warn("publications unavailable", zap.Error(err))
		exitUnableToLoad(err)
	}

	var w io.Writer = os.Stdout
	if pubsOut != "" {
		f, err := os.Create(pubsOut)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", pubsOut, err)
		}
		defer f.Close()
		w = f
	}

	switch {
	case pubsBibtex:
		// BibTeX is always text output, never JSON
		_, err = fmt.Fprintln(w, result.BibTeX())
	case humanOutput:
		_, err = io.WriteString(w, formatResultHuman(result))
	default:
		err = writeJSON(w, result)
	}
	if err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}

	if pubsOut != "" {
		logger.Info("publications written",
			zap.String("path", pubsOut),
			zap.Int("count", result.Count()))
	}
	return nil
}
