// Package workerpool runs CPU-bound closures on a fixed set of goroutines,
// keeping expensive work (password hashing) off the request-handling path.
// Callers block until their closure completes or their context is done.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Do after Close has been called.
var ErrClosed = errors.New("worker pool is closed")

// Pool is a bounded pool of workers executing submitted closures.
type Pool struct {
	tasks chan func()
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts a pool with the given number of workers. Sizes below 1 are
// clamped to 1. The submission queue is bounded at the worker count, so a
// flood of submissions backs up into the callers rather than into memory.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks: make(chan func(), workers),
		quit:  make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.quit:
			return
		}
	}
}

// Do runs fn on a pool worker and waits for it to finish. It returns fn's
// error, or the context/dispatch error if the task never ran. A task that
// was already dispatched runs to completion even if the caller's context
// expires while waiting.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	select {
	case <-p.quit:
		return ErrClosed
	default:
	}

	result := make(chan error, 1)
	task := func() { result <- fn() }

	select {
	case p.tasks <- task:
	case <-p.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the workers. Tasks already dispatched to a worker finish;
// queued but unclaimed tasks are dropped. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
