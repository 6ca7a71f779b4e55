// Package enrich fills publications with author lists and volume, issue
// and page data from a metadata service, in sequential fixed-size batches.
package enrich

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/reference"
)

const (
	// DefaultBatchSize is the number of concurrent lookups per batch.
	DefaultBatchSize = 5

	// DefaultRequestTimeout bounds a single lookup.
	DefaultRequestTimeout = 15 * time.Second
)

// MetadataSource looks up a metadata record by DOI.
// *oaworks.Client satisfies it.
type MetadataSource interface {
	Lookup(ctx context.Context, doi string) (*oaworks.Metadata, error)
}

// Stats summarises one Enrich call.
type Stats struct {
	Batches  int  `json:"batches"`
	Lookups  int  `json:"lookups"`
	Failed   int  `json:"failed"`
	Skipped  int  `json:"skipped"`  // publications without DOI
	Canceled bool `json:"canceled"` // context ended before all batches ran
}

// Enricher runs metadata lookups in batches. Lookups inside a batch run
// concurrently; the next batch starts only after every lookup of the
// previous one has returned.
type Enricher struct {
	source         MetadataSource
	batchSize      int
	requestTimeout time.Duration
	logger         *zap.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithBatchSize sets the batch size. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithRequestTimeout bounds each lookup. Zero means no per-lookup timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(e *Enricher) {
		e.requestTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Enricher backed by source.
func New(source MetadataSource, opts ...Option) *Enricher {
	e := &Enricher{
		source:         source,
		batchSize:      DefaultBatchSize,
		requestTimeout: DefaultRequestTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BatchSize returns the configured batch size.
func (e *Enricher) BatchSize() int {
	return e.batchSize
}

// Enrich returns a copy of pubs with metadata merged into every record
// that has a DOI. A failed lookup leaves its record exactly as it was.
// Failures are never retried.
func (e *Enricher) Enrich(ctx context.Context, pubs []reference.Publication) ([]reference.Publication, Stats) {
	out := make([]reference.Publication, len(pubs))
	// Batches are cut from the DOI-bearing records only, in input order.
	// Records without a DOI never take a slot, so every batch but the last
	// carries a full batchSize of lookups.
	var pending []int
	for i, p := range pubs {
		out[i] = p.Clone()
		if p.HasDOI() {
			pending = append(pending, i)
		}
	}

	stats := Stats{Skipped: len(pubs) - len(pending)}

	for start := 0; start < len(pending); start += e.batchSize {
		if ctx.Err() != nil {
			stats.Canceled = true
			e.logger.Warn("enrichment canceled",
				zap.Int("remaining", len(pending)-start),
				zap.Error(ctx.Err()))
			break
		}

		end := min(start+e.batchSize, len(pending))
		batch := pending[start:end]

		var failed atomic.Int32
		var g errgroup.Group
		for _, idx := range batch {
			g.Go(func() error {
				if !e.enrichOne(ctx, &out[idx]) {
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		stats.Batches++
		stats.Lookups += len(batch)
		stats.Failed += int(failed.Load())

		e.logger.Debug("batch enriched",
			zap.Int("batch", stats.Batches),
			zap.Int("size", len(batch)),
			zap.Int32("failed", failed.Load()))
	}

	return out, stats
}

// enrichOne looks up pub's DOI and merges the result in place. It reports
// whether the lookup succeeded; on failure pub is untouched.
func (e *Enricher) enrichOne(ctx context.Context, pub *reference.Publication) bool {
	if e.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.requestTimeout)
		defer cancel()
	}

	meta, err := e.source.Lookup(ctx, pub.DOI)
	if err != nil {
		e.logger.Warn("metadata lookup failed",
			zap.String("doi", pub.DOI),
			zap.Error(err))
		return false
	}
	if meta == nil {
		e.logger.Warn("metadata lookup returned no record", zap.String("doi", pub.DOI))
		return false
	}

	*pub = Merge(*pub, *meta)
	return true
}
