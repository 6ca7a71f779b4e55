package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/config"
	"github.com/matsen/labsite/internal/enrich"
	"github.com/matsen/labsite/internal/orcid"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <doi>",
	Short: "Look up one DOI in the metadata service",
	Long: `Look up a DOI in OA.Works and show the fields the enricher would merge.

Examples:
  labsite metadata 10.1093/sysbio/syy032
  labsite metadata https://doi.org/10.1093/sysbio/syy032 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	doi := orcid.CleanDOI(args[0])
	if doi == "" {
		exitWithError(ExitError, "empty DOI")
	}

	cfg := mustLoadConfig(config.Overrides{})

	ctx, cancel := commandContext()
	defer cancel()

	meta, err := newMetadataClient(cfg).Lookup(ctx, doi)
	if err != nil {
		exitWithError(exitCodeFor(err), "looking up %s: %v", doi, err)
	}

	resp := MetadataResponse{
		DOI:     doi,
		Authors: enrich.FormatAuthors(meta.Author),
		Venue:   meta.ContainerTitle.First(),
		Volume:  meta.Volume.String(),
		Issue:   meta.Issue.String(),
		Pages:   meta.Page.String(),
	}
	if resp.Authors == nil {
		resp.Authors = []string{}
	}

	if humanOutput {
		fmt.Print(formatMetadataHuman(resp))
		return nil
	}
	return outputJSON(resp)
}
