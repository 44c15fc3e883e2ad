package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a work-stealing pool of goroutines.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New creates a pool with the given number of workers and starts them.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *Pool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case fn := <-p.queues[(id+i)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every task and waits for all of them.
//
// Tasks that have not started when ctx is done are skipped; Run then returns
// the context's error together with the number of skipped tasks. A task that
// already started always runs to completion. Run on a closed pool skips
// everything and returns ErrClosed.
func (p *Pool) Run(ctx context.Context, tasks []func()) (skipped int, err error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	if !p.running.Load() {
		return len(tasks), ErrClosed
	}

	var (
		wg      sync.WaitGroup
		missed  atomic.Int64
		pending = len(tasks)
	)
	wg.Add(len(tasks))

submit:
	for i, fn := range tasks {
		task := fn
		wrapped := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				missed.Add(1)
				return
			}
			task()
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
			pending--
		case <-ctx.Done():
			break submit
		case <-p.done:
			break submit
		}
	}
	if pending > 0 {
		missed.Add(int64(pending))
		wg.Add(-pending)
	}
	wg.Wait()

	skipped = int(missed.Load())
	if skipped == 0 {
		return 0, nil
	}
	if err = ctx.Err(); err == nil {
		err = ErrClosed
	}
	return skipped, err
}

// Close stops accepting work, runs what is already queued and stops the workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
