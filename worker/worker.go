package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"go.uber.org/atomic"
)

// Pool runs submitted jobs on a fixed amount of goroutines. A job that panics is reported through sentry and
// does not take its goroutine down with it.
type Pool struct {
	queue  chan func()
	wg     sync.WaitGroup
	panics atomic.Int64
}

// New starts a pool of n workers. If n is not positive, one worker is started per CPU.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer func() {
		if err := recover(); err != nil {
			p.panics.Inc()
			sentry.CurrentHub().Recover(err)
		}
	}()
	f()
}

// Submit queues a job, blocking while all workers are busy. Submit must not be called after Close.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Panics returns the amount of jobs that panicked so far.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}
