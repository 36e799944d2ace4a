package ingest_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_reviews/internal/ingest"
)

func TestPool_RunsEveryTaskWithinBound(t *testing.T) {
	const workers, tasks = 4, 200
	p := ingest.NewPool(workers, zerolog.Nop())
	assert.Equal(t, workers, p.Size())

	var running, peak, done atomic.Int64
	for i := 0; i < tasks; i++ {
		require.NoError(t, p.Submit(ingest.TaskFunc(func() {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(100 * time.Microsecond)
			running.Add(-1)
			done.Add(1)
		})))
	}
	p.Shutdown()

	assert.Equal(t, int64(tasks), done.Load())
	assert.LessOrEqual(t, peak.Load(), int64(workers))
}

func TestPool_DefaultSize(t *testing.T) {
	p := ingest.NewPool(0, zerolog.Nop())
	defer p.Shutdown()
	assert.Equal(t, ingest.DefaultWorkers, p.Size())
}

func TestPool_SubmitDoesNotWaitForWorkers(t *testing.T) {
	p := ingest.NewPool(1, zerolog.Nop())
	release := make(chan struct{})
	require.NoError(t, p.Submit(ingest.TaskFunc(func() { <-release })))

	submitted := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = p.Submit(ingest.TaskFunc(func() {}))
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked while the only worker was busy")
	}
	close(release)
	p.Shutdown()
}

func TestPool_RecoversPanics(t *testing.T) {
	p := ingest.NewPool(2, zerolog.Nop())
	var wg sync.WaitGroup
	var ran atomic.Int64

	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, p.Submit(ingest.TaskFunc(func() {
			defer wg.Done()
			if i%3 == 0 {
				panic("boom")
			}
			ran.Add(1)
		})))
	}
	wg.Wait()
	p.Shutdown()

	assert.Equal(t, int64(6), ran.Load())
	assert.Equal(t, int64(4), p.Panics())
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := ingest.NewPool(2, zerolog.Nop())
	p.Shutdown()
	p.Shutdown()
	assert.ErrorIs(t, p.Submit(ingest.TaskFunc(func() {})), ingest.ErrPoolClosed)
}
