package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/config"
	"github.com/matsen/labsite/internal/enrich"
	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/pipeline"
)

// changedInt returns a pointer to v when the named flag was set on the
// command line, so an explicit zero still overrides the config.
func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// mustLoadConfig resolves the configuration and exits with
// ExitConfigError when it is invalid.
func mustLoadConfig(o config.Overrides) *config.Config {
	cfg, err := config.Resolve(o)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// commandContext returns a context canceled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newORCIDClient(cfg *config.Config) *orcid.Client {
	opts := []orcid.ClientOption{orcid.WithBaseURL(cfg.ORCIDURL)}
	if cfg.UserAgent != "" {
		opts = append(opts, orcid.WithUserAgent(cfg.UserAgent))
	}
	return orcid.NewClient(opts...)
}

func newMetadataClient(cfg *config.Config) *oaworks.Client {
	opts := []oaworks.ClientOption{oaworks.WithBaseURL(cfg.MetadataURL)}
	if cfg.UserAgent != "" {
		opts = append(opts, oaworks.WithUserAgent(cfg.UserAgent))
	}
	return oaworks.NewClient(opts...)
}

func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	enricher := enrich.New(newMetadataClient(cfg),
		enrich.WithBatchSize(cfg.BatchSize),
		enrich.WithRequestTimeout(cfg.RequestTimeout),
		enrich.WithLogger(logger.Named("enrich")),
	)
	return pipeline.New(newORCIDClient(cfg), enricher, cfg.ORCIDID,
		pipeline.WithMax(cfg.MaxPublications),
		pipeline.WithLogger(logger.Named("pipeline")),
	)
}
