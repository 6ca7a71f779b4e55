package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/config"
)

var worksMax int

func init() {
	worksCmd.Flags().IntVar(&worksMax, "max", 0, "Number of works to keep, 0 for all (overrides config)")
	rootCmd.AddCommand(worksCmd)
}

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "List the parsed ORCID works without enrichment",
	Long: `Fetch and parse the ORCID works, sort them newest first and apply the cap.
No metadata lookups are made, so this shows exactly what the registry returns.

Examples:
  labsite works
  labsite works --human --max 0`,
	Args: cobra.NoArgs,
	RunE: runWorks,
}

func runWorks(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig(config.Overrides{
		ORCIDID:         orcidIDFlag,
		MaxPublications: changedInt(cmd, "max", worksMax),
	})

	ctx, cancel := commandContext()
	defer cancel()

	pubs, total, err := newPipeline(cfg).Works(ctx)
	if err != nil {
		exitUnableToLoad(err)
	}

	if humanOutput {
		fmt.Print(formatWorksHuman(pubs, total))
		return nil
	}
	return outputJSON(WorksResponse{
		ORCID:        cfg.ORCIDID,
		Total:        total,
		Count:        len(pubs),
		Publications: pubs,
	})
}
