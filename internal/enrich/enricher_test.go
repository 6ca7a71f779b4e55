package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/reference"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type lookupEvent struct {
	start bool
	doi   string
}

// recordingSource logs lookup start/end events. When batchOf is set,
// each lookup waits until every member of its batch has started, which
// only succeeds if the whole batch runs concurrently.
type recordingSource struct {
	mu        sync.Mutex
	events    []lookupEvent
	fail      map[string]bool
	batchOf   func(doi string) int
	sizes     []int
	started   map[int]int
	ready     map[int]chan struct{}
	timedOut  bool
	blockDOIs map[string]bool
}

func newRecordingSource() *recordingSource {
	return &recordingSource{
		fail:      map[string]bool{},
		started:   map[int]int{},
		ready:     map[int]chan struct{}{},
		blockDOIs: map[string]bool{},
	}
}

func (s *recordingSource) Lookup(ctx context.Context, doi string) (*oaworks.Metadata, error) {
	s.mu.Lock()
	s.events = append(s.events, lookupEvent{start: true, doi: doi})
	var wait chan struct{}
	if s.batchOf != nil {
		b := s.batchOf(doi)
		if s.ready[b] == nil {
			s.ready[b] = make(chan struct{})
		}
		s.started[b]++
		if s.started[b] == s.sizes[b] {
			close(s.ready[b])
		}
		wait = s.ready[b]
	}
	block := s.blockDOIs[doi]
	s.mu.Unlock()

	if wait != nil {
		select {
		case <-wait:
		case <-time.After(2 * time.Second):
			s.mu.Lock()
			s.timedOut = true
			s.mu.Unlock()
		}
	}

	var err error
	if block {
		<-ctx.Done()
		err = ctx.Err()
	}

	s.mu.Lock()
	s.events = append(s.events, lookupEvent{start: false, doi: doi})
	failed := s.fail[doi]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if failed {
		return nil, errors.New("lookup failed")
	}
	return &oaworks.Metadata{
		Author: []oaworks.Author{{Family: "Author", Given: doi}},
		Volume: "1",
	}, nil
}

func publications(n int) []reference.Publication {
	pubs := make([]reference.Publication, n)
	for i := range pubs {
		pubs[i] = reference.Publication{
			DOI:      fmt.Sprintf("10.1/%02d", i),
			Title:    fmt.Sprintf("Paper %02d", i),
			Year:     2024,
			WorkType: "journal-article",
		}
	}
	return pubs
}

func TestEnrich_BatchBoundaries(t *testing.T) {
	pubs := publications(12)
	batchIndex := map[string]int{}
	for i, p := range pubs {
		batchIndex[p.DOI] = i / 5
	}

	src := newRecordingSource()
	src.batchOf = func(doi string) int { return batchIndex[doi] }
	src.sizes = []int{5, 5, 2}

	_, stats := New(src).Enrich(context.Background(), pubs)

	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 12, stats.Lookups)
	assert.Equal(t, 0, stats.Failed)
	assert.False(t, src.timedOut, "a batch did not run fully concurrently")

	// Every lookup of batch N must have finished before any lookup of
	// batch N+1 starts.
	ended := map[int]int{}
	for _, ev := range src.events {
		b := batchIndex[ev.doi]
		if ev.start {
			if b > 0 {
				require.Equal(t, src.sizes[b-1], ended[b-1],
					"batch %d started before batch %d finished", b, b-1)
			}
			continue
		}
		ended[b]++
	}
	assert.Equal(t, map[int]int{0: 5, 1: 5, 2: 2}, ended)
}

func TestEnrich_FailedLookupLeavesRecordUnchanged(t *testing.T) {
	pubs := publications(7)
	pubs[3].Venue = "Genetics"
	src := newRecordingSource()
	src.fail[pubs[3].DOI] = true
	src.fail[pubs[6].DOI] = true

	got, stats := New(src).Enrich(context.Background(), pubs)

	require.Len(t, got, 7)
	assert.Equal(t, 2, stats.Failed)
	for _, i := range []int{3, 6} {
		assert.Empty(t, cmp.Diff(pubs[i], got[i]), "failed record %d changed (-want +got)", i)
	}
	for _, i := range []int{0, 1, 2, 4, 5} {
		assert.Equal(t, []string{"Author, 1."}, got[i].Authors, "record %d", i)
		assert.Equal(t, "1", got[i].Volume)
	}
}

func TestEnrich_DoesNotModifyInput(t *testing.T) {
	pubs := publications(3)
	snapshot := make([]reference.Publication, len(pubs))
	for i, p := range pubs {
		snapshot[i] = p.Clone()
	}

	New(newRecordingSource()).Enrich(context.Background(), pubs)

	assert.Empty(t, cmp.Diff(snapshot, pubs), "Enrich() modified its input (-want +got)")
}

func TestEnrich_SkipsRecordsWithoutDOI(t *testing.T) {
	pubs := publications(4)
	pubs[1].DOI = ""
	pubs[2].DOI = ""
	src := newRecordingSource()

	got, stats := New(src).Enrich(context.Background(), pubs)

	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 2, stats.Lookups)
	assert.Equal(t, 1, stats.Batches)
	for _, ev := range src.events {
		assert.NotEmpty(t, ev.doi, "record without DOI was queried")
	}
	assert.Nil(t, got[1].Authors)
	assert.Nil(t, got[2].Authors)
	assert.NotNil(t, got[0].Authors)
}

func TestEnrich_RequestTimeoutUnblocksBatch(t *testing.T) {
	pubs := publications(3)
	src := newRecordingSource()
	src.blockDOIs[pubs[1].DOI] = true

	start := time.Now()
	got, stats := New(src, WithRequestTimeout(50*time.Millisecond)).Enrich(context.Background(), pubs)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, cmp.Diff(pubs[1], got[1]), "timed-out record changed (-want +got)")
	assert.NotNil(t, got[0].Authors)
	assert.NotNil(t, got[2].Authors)
}

func TestEnrich_CanceledContextStopsLaterBatches(t *testing.T) {
	pubs := publications(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newRecordingSource()
	got, stats := New(src).Enrich(ctx, pubs)

	assert.True(t, stats.Canceled)
	assert.Equal(t, 0, stats.Batches)
	assert.Empty(t, src.events)
	assert.Len(t, got, 8)
}

func TestEnrich_BatchSizeOption(t *testing.T) {
	src := newRecordingSource()
	e := New(src, WithBatchSize(2), WithBatchSize(0))
	assert.Equal(t, 2, e.BatchSize())

	_, stats := e.Enrich(context.Background(), publications(5))
	assert.Equal(t, 3, stats.Batches)
}

func TestEnrich_Empty(t *testing.T) {
	got, stats := New(newRecordingSource()).Enrich(context.Background(), nil)
	assert.Empty(t, got)
	assert.Equal(t, Stats{}, stats)
}
