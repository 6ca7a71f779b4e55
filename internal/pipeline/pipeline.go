// Package pipeline runs the publications flow end to end: fetch the works
// from the registry, parse them, sort and cap the list, enrich it with
// metadata, group it by year, and attach a BibTeX citation to each record.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/matsen/labsite/internal/enrich"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publist"
	"github.com/matsen/labsite/internal/reference"
)

var (
	// ErrRegistryUnavailable is returned when the works list could not be
	// fetched or decoded. It wraps the underlying client error.
	ErrRegistryUnavailable = errors.New("publication registry unavailable")

	// ErrNoPublications is returned when the registry answered but no work
	// had a usable year.
	ErrNoPublications = errors.New("no publications with a valid year")
)

// WorksSource fetches the works list for an ORCID iD.
// *orcid.Client satisfies it.
type WorksSource interface {
	FetchWorks(ctx context.Context, orcidID string) (*orcid.WorksResponse, error)
}

// Pipeline holds the collaborators for one publications page. A Pipeline
// may be run repeatedly; each Run works on its own data.
type Pipeline struct {
	works    WorksSource
	enricher *enrich.Enricher
	orcidID  string
	max      int
	logger   *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMax sets how many publications survive the cap. Zero or less keeps
// every publication.
func WithMax(n int) Option {
	return func(p *Pipeline) {
		p.max = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline for orcidID.
func New(works WorksSource, enricher *enrich.Enricher, orcidID string, opts ...Option) *Pipeline {
	p := &Pipeline{
		works:    works,
		enricher: enricher,
		orcidID:  orcidID,
		max:      publist.DefaultMax,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Works fetches and parses the registry works, then sorts and caps them.
// It also returns the number of valid publications before the cap.
func (p *Pipeline) Works(ctx context.Context) ([]reference.Publication, int, error) {
	resp, err := p.works.FetchWorks(ctx, p.orcidID)
	if err != nil {
		p.logger.Warn("fetching works failed",
			zap.String("orcid", p.orcidID),
			zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	pubs := orcid.ParseWorks(resp)
	if dropped := len(resp.Group) - len(pubs); dropped > 0 {
		p.logger.Debug("dropped works without a valid year",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(pubs)))
	}
	if len(pubs) == 0 {
		return nil, 0, ErrNoPublications
	}

	total := len(pubs)
	pubs = publist.Cap(publist.Sort(pubs), p.max)

	p.logger.Info("works loaded",
		zap.String("orcid", p.orcidID),
		zap.Int("valid", total),
		zap.Int("kept", len(pubs)))

	return pubs, total, nil
}

// Run executes the whole pipeline. On error the Result is nil; both
// ErrRegistryUnavailable and ErrNoPublications mean there is nothing to
// show. Metadata failures never fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	pubs, total, err := p.Works(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("enriching publications",
		zap.Int("count", len(pubs)),
		zap.Int("batch_size", p.enricher.BatchSize()))

	enriched, stats := p.enricher.Enrich(ctx, pubs)
	if stats.Failed > 0 || stats.Canceled {
		p.logger.Warn("enrichment incomplete",
			zap.Int("failed", stats.Failed),
			zap.Int("lookups", stats.Lookups),
			zap.Bool("canceled", stats.Canceled))
	}

	groups := publist.GroupByYear(enriched)

	return &Result{
		ORCID:      p.orcidID,
		Total:      total,
		Groups:     buildGroups(groups),
		Enrichment: stats,
	}, nil
}
