package ingest

import (
	"sync"
	"sync/atomic"

	"hotel_reviews/internal/adapters/observability"
)

// Barrier counts registered, unfinished units of work and lets one goroutine
// wait for the count to drain. Register must happen before the work is
// handed off; the side that discovers work should hold a unit of its own
// until discovery is over, or Wait can return early.
type Barrier struct {
	wg          sync.WaitGroup
	outstanding atomic.Int64
}

func NewBarrier() *Barrier { return &Barrier{} }

func (b *Barrier) Register() {
	b.outstanding.Add(1)
	b.wg.Add(1)
	observability.ObserveOutstanding(1)
}

// Arrive deregisters one unit. Arriving more often than registering panics.
func (b *Barrier) Arrive() {
	if b.outstanding.Add(-1) < 0 {
		panic("ingest: barrier arrive without register")
	}
	observability.ObserveOutstanding(-1)
	b.wg.Done()
}

func (b *Barrier) Wait() { b.wg.Wait() }

func (b *Barrier) Outstanding() int64 { return b.outstanding.Load() }
