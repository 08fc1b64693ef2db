// Package parallel runs jobs on a fixed number of goroutines and counts
// their outcomes.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type (
	// WorkerFunc queues a job. A job returning an error counts as failed.
	WorkerFunc func(func() error)
	// WaitFunc blocks until queued jobs are done. With done set no further
	// jobs may be queued.
	WaitFunc   func(done bool) Stats
	CancelFunc func()
)

type Stats struct {
	Processed uint64
	Failed    uint64
}

func (s Stats) Total() uint64 {
	return s.Processed + s.Failed
}

type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc

	processed atomic.Uint64
	failed    atomic.Uint64
}

// Start creates a pool of numWorkers goroutines; values below 1 mean
// GOMAXPROCS. A single worker runs jobs synchronously in Do.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Do = pool.run
	pool.Wait = func(bool) Stats { return pool.stats() }
	pool.Cancel = func() {}

	if numWorkers > 1 {
		workChan := make(chan func() error, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					pool.run(f)
				}
			})
		}

		pool.Do = func(f func() error) {
			workChan <- f
		}

		pool.Wait = func(done bool) Stats {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
			return pool.stats()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

func (p *Pool) run(f func() error) {
	if err := f(); err != nil {
		p.failed.Add(1)
		return
	}
	p.processed.Add(1)
}

func (p *Pool) stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}
