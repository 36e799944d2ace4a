package ingest

import (
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/parser"
)

// Report summarizes one ingestion run.
type Report struct {
	Root        string        `json:"root"`
	Workers     int           `json:"workers"`
	Files       int64         `json:"files"`
	FailedFiles int64         `json:"failed_files"`
	Accepted    int64         `json:"accepted"`
	Rejected    int64         `json:"rejected"`
	Duration    time.Duration `json:"duration"`
}

type runStats struct {
	files, failed, accepted, rejected atomic.Int64
}

func (s *runStats) report(root string, workers int, d time.Duration) Report {
	return Report{
		Root:        root,
		Workers:     workers,
		Files:       s.files.Load(),
		FailedFiles: s.failed.Load(),
		Accepted:    s.accepted.Load(),
		Rejected:    s.rejected.Load(),
		Duration:    d,
	}
}

// FileTask parses one file and merges its reviews. It is run exactly once,
// by one worker, and always arrives at its barrier.
type FileTask struct {
	Path string

	store   domain.ReviewStore
	barrier *Barrier
	stats   *runStats
	log     zerolog.Logger
}

func (t *FileTask) Run() {
	defer t.barrier.Arrive()
	t.stats.files.Add(1)

	// a panic below skips every return path; the pool recovers it
	settled := false
	defer func() {
		if !settled {
			t.stats.failed.Add(1)
			observability.ObserveFile("failed")
		}
	}()

	data, err := os.ReadFile(t.Path)
	if err != nil {
		settled = true
		t.fail(domain.PathErr(domain.KindFileIO, t.Path, err))
		return
	}
	res, err := parser.ParseReviews(data)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			de.Path = t.Path
		}
		settled = true
		t.fail(err)
		return
	}

	for _, rerr := range res.Rejected {
		var de *domain.Error
		idx := -1
		if errors.As(rerr, &de) {
			de.Path = t.Path
			idx = de.Index
		}
		kind := string(domain.KindOf(rerr))
		t.log.Warn().Err(rerr).Str("path", t.Path).Int("index", idx).Str("kind", kind).Msg("review skipped")
		observability.ObserveIngestError(kind)
	}

	t.store.MergeFile(res.Reviews)
	settled = true

	t.stats.accepted.Add(int64(len(res.Reviews)))
	t.stats.rejected.Add(int64(len(res.Rejected)))
	observability.ObserveFile("ok")
	observability.ObserveRecords("accepted", len(res.Reviews))
	observability.ObserveRecords("rejected", len(res.Rejected))
	t.log.Debug().Str("path", t.Path).Int("accepted", len(res.Reviews)).Int("rejected", len(res.Rejected)).Msg("file merged")
}

func (t *FileTask) fail(err error) {
	kind := string(domain.KindOf(err))
	t.stats.failed.Add(1)
	t.log.Warn().Err(err).Str("path", t.Path).Str("kind", kind).Msg("file skipped")
	observability.ObserveIngestError(kind)
	observability.ObserveFile("failed")
}
