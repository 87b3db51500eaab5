package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type countJob struct {
	wg      *sync.WaitGroup
	counter *int64
}

func (j *countJob) Execute() {
	atomic.AddInt64(j.counter, 1)
	j.wg.Done()
}

func TestPoolRunsAllJobs(t *testing.T) {
	pool := NewPool(3, 10)
	defer pool.Close()

	var wg sync.WaitGroup
	var counter int64
	jobs := 20
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		pool.Exec(&countJob{wg: &wg, counter: &counter})
	}
	wg.Wait()

	require.Equal(t, int64(jobs), atomic.LoadInt64(&counter))
}

func TestPoolResize(t *testing.T) {
	pool := NewPool(1, 5)
	defer pool.Close()
	pool.Resize(4)

	var wg sync.WaitGroup
	var counter int64
	jobs := 8
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		pool.Exec(&countJob{wg: &wg, counter: &counter})
	}
	wg.Wait()

	require.Equal(t, int64(jobs), atomic.LoadInt64(&counter))
}
