package pool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used by parallel computations.
//
// A Pool holds no goroutines between calls, so it can be shared freely and
// needs no teardown.
type Pool struct {
	workers int
}

// NewPool creates a Pool running at most `count` tasks at once.
// If count <= 0, twice the number of available CPUs is used. A pool always has
// at least two workers.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = 2 * runtime.NumCPU()
	}
	if count < 2 {
		count = 2
	}
	return &Pool{workers: count}
}

// Workers returns the maximum number of concurrently running tasks.
func (p *Pool) Workers() int {
	return p.workers
}

// Parallelize calls f(i) for i in [0, count) and returns the results indexed by i.
func (p *Pool) Parallelize(count int, f func(i int) interface{}) []interface{} {
	results := make([]interface{}, count)
	_ = p.Run(count, func(i int) error {
		results[i] = f(i)
		return nil
	})
	return results
}

// Run calls f(i) for i in [0, count) and waits for all of them.
// It returns the first non-nil error.
func (p *Pool) Run(count int, f func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			return f(i)
		})
	}
	return g.Wait()
}
