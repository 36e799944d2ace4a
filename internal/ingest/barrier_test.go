package ingest_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel_reviews/internal/ingest"
)

func TestBarrier_WaitsForAllArrivals(t *testing.T) {
	b := ingest.NewBarrier()
	var finished atomic.Int64

	b.Register() // discovery phase
	for i := 0; i < 20; i++ {
		b.Register()
		go func() {
			defer b.Arrive()
			time.Sleep(time.Millisecond)
			finished.Add(1)
		}()
	}
	assert.GreaterOrEqual(t, b.Outstanding(), int64(1))
	b.Arrive()
	b.Wait()

	assert.Equal(t, int64(20), finished.Load())
	assert.Zero(t, b.Outstanding())
}

// A task that finishes before discovery ends must not release Wait.
func TestBarrier_DiscoveryHoldKeepsCountOpen(t *testing.T) {
	b := ingest.NewBarrier()
	b.Register()

	b.Register()
	b.Arrive() // first task drains immediately

	released := make(chan struct{})
	go func() {
		b.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Wait returned while discovery still held the barrier")
	case <-time.After(20 * time.Millisecond):
	}

	b.Arrive()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after the last arrival")
	}
}

func TestBarrier_ArriveWithoutRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { ingest.NewBarrier().Arrive() })
}
