package ingest

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultWorkers is used when a non-positive worker count is given.
const DefaultWorkers = 3

var ErrPoolClosed = errors.New("ingest: pool is shut down")

type Task interface {
	Run()
}

type TaskFunc func()

func (f TaskFunc) Run() { f() }

// Pool runs submitted tasks on a fixed set of goroutines. The queue is
// unbounded, so Submit never waits for a worker.
type Pool struct {
	log     zerolog.Logger
	workers int

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	wg     sync.WaitGroup
	panics atomic.Int64
}

func NewPool(workers int, log zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{log: log, workers: workers}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work(i)
	}
	return p
}

func (p *Pool) Submit(t Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.queue = append(p.queue, t)
	p.cond.Signal()
	return nil
}

// Shutdown stops accepting tasks, lets the workers drain the queue and waits
// for them to exit. Calling it again is a no-op.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) Size() int { return p.workers }

// Panics is the number of tasks that panicked and were recovered.
func (p *Pool) Panics() int64 { return p.panics.Load() }

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.run(id, t)
	}
}

func (p *Pool) run(id int, t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			p.log.Error().Int("worker", id).Interface("panic", r).Msg("task panicked")
		}
	}()
	t.Run()
}
