// Package worker provides the bounded goroutine pool the income worker
// uses to churn through backlog distributions.
package worker

import (
	"sync"
)

// Job is a unit of work the pool can run.
type Job interface {
	Execute()
}

// Pool fans Jobs out to a resizable set of workers over a bounded
// queue. Exec blocks once the queue is full, which keeps a large
// backlog from piling up in memory.
type Pool struct {
	mu   sync.Mutex
	size int
	jobs chan Job
	quit chan struct{}
	wg   sync.WaitGroup
}

func NewPool(speed int, queue int) *Pool {
	pool := &Pool{
		jobs: make(chan Job, queue),
		quit: make(chan struct{}),
	}
	pool.Resize(speed)
	return pool
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.wg.Add(1)
			go job.Execute()
			p.wg.Done()
		case <-p.quit:
			return
		}
	}
}

// Resize grows or shrinks the worker set to n.
func (p *Pool) Resize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.size < n {
		p.size++
		p.wg.Add(1)
		go p.worker()
	}
	for p.size > n {
		p.size--
		p.quit <- struct{}{}
	}
}

func (p *Pool) Close() {
	close(p.jobs)
}

func (p *Pool) Wait() {
	p.wg.Wait()
}

// Exec queues a job, blocking while the queue is full.
func (p *Pool) Exec(job Job) {
	p.jobs <- job
}
