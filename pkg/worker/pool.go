package worker

import (
	"errors"
	"sync"
)

// Pool is a fixed-size worker pool which executes submitted tasks on
// one of its workers. Unlike a naive 'go' call per task, the pool
// bounds how many tasks run concurrently, which matters when each task
// talks to rate-limited external APIs.
//
// The zero value is not usable; construct with NewPool.
type Pool struct {
	size    int
	tasks   chan func()
	wg      sync.WaitGroup
	started bool
}

// NewPool creates a pool which will run at most 'size' tasks
// concurrently. A size below 1 is clamped to 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{size: size, tasks: make(chan func())}
}

// Start spawns the pool workers. Each worker pulls tasks from the
// shared channel until Close is called.
func (pool *Pool) Start() error {
	if pool.started {
		return errors.New("cannot start an already started worker pool")
	}

	pool.started = true
	for i := 0; i < pool.size; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			for task := range pool.tasks {
				task()
			}
		}()
	}

	return nil
}

// Submit hands a task to the pool, blocking until a worker is free to
// accept it. Submitting to a pool that was never started will block
// forever, and submitting after Close will panic.
func (pool *Pool) Submit(task func()) {
	pool.tasks <- task
}

// Close stops accepting new tasks and blocks until all submitted
// tasks have finished.
func (pool *Pool) Close() {
	if !pool.started {
		return
	}

	close(pool.tasks)
	pool.wg.Wait()
	pool.started = false
}
