// Package ingest loads review files from a directory tree into a ReviewStore.
//
// The tree is walked on the calling goroutine; each file becomes a FileTask
// run by a fixed-size Pool. A Barrier tracks outstanding tasks, and Ingest
// returns only once every task has finished, so everything it merged is
// visible to readers the moment it returns.
package ingest

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/domain"
)

type Ingester struct {
	store domain.ReviewStore
	log   zerolog.Logger

	mu   sync.Mutex
	last Report
}

func New(store domain.ReviewStore, log zerolog.Logger) *Ingester {
	return &Ingester{store: store, log: observability.Component(log, "ingest")}
}

// Ingest loads every ingestible file under root using the given number of
// workers (DefaultWorkers if not positive). The only error it returns is a
// KindInvalidPath one, before any file has been touched; file- and
// record-level problems are logged and skipped.
func (in *Ingester) Ingest(root string, workers int) error {
	start := time.Now()
	if workers <= 0 {
		workers = DefaultWorkers
	}

	walk, err := NewWalk(root, in.log)
	if err != nil {
		in.log.Error().Err(err).Str("path", root).Msg("ingestion aborted")
		observability.ObserveIngestError(string(domain.KindOf(err)))
		return err
	}

	pool := NewPool(workers, in.log)
	barrier := NewBarrier()
	stats := &runStats{}

	in.log.Info().Str("path", root).Int("workers", workers).Msg("ingestion starting")

	// held for the whole walk so an early, fast task cannot drain the count
	barrier.Register()
	for path, ok := walk.Next(); ok; path, ok = walk.Next() {
		barrier.Register()
		task := &FileTask{Path: path, store: in.store, barrier: barrier, stats: stats, log: in.log}
		if err := pool.Submit(task); err != nil {
			barrier.Arrive()
			in.log.Error().Err(err).Str("path", path).Msg("submit failed")
		}
	}
	barrier.Arrive()
	barrier.Wait()
	pool.Shutdown()

	rep := stats.report(root, workers, time.Since(start))
	in.mu.Lock()
	in.last = rep
	in.mu.Unlock()

	observability.ObserveIngest(rep.Duration)
	in.log.Info().
		Str("path", root).
		Int64("files", rep.Files).
		Int64("failed_files", rep.FailedFiles).
		Int64("accepted", rep.Accepted).
		Int64("rejected", rep.Rejected).
		Int64("panics", pool.Panics()).
		Dur("duration", rep.Duration).
		Msg("ingestion completed")
	return nil
}

// LastReport returns the summary of the most recent successful run.
func (in *Ingester) LastReport() Report {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last
}

// Ingest runs one ingestion into store, logging through the global logger.
func Ingest(store domain.ReviewStore, root string, workers int) error {
	return New(store, log.Logger).Ingest(root, workers)
}
