package worker_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/worker"
	"github.com/stretchr/testify/assert"
)

func Test_Pool_RunsAllSubmittedTasks(t *testing.T) {
	pool := worker.NewPool(4)
	assert.Nil(t, pool.Start())

	var completed atomic.Int32
	for i := 0; i < 100; i++ {
		pool.Submit(func() { completed.Add(1) })
	}

	pool.Close()
	assert.EqualValues(t, 100, completed.Load())
}

func Test_Pool_BoundsConcurrency(t *testing.T) {
	const poolSize = 3
	pool := worker.NewPool(poolSize)
	assert.Nil(t, pool.Start())

	var mu sync.Mutex
	running, peak := 0, 0
	gate := make(chan struct{})

	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			<-gate

			mu.Lock()
			running--
			mu.Unlock()
		})
	}

	close(gate)
	pool.Close()

	assert.LessOrEqual(t, peak, poolSize)
	assert.Positive(t, peak)
}

func Test_Pool_DoubleStartRejected(t *testing.T) {
	pool := worker.NewPool(1)
	assert.Nil(t, pool.Start())
	assert.Error(t, pool.Start())
	pool.Close()
}

func Test_Pool_SizeClampedToOne(t *testing.T) {
	pool := worker.NewPool(0)
	assert.Nil(t, pool.Start())

	done := false
	pool.Submit(func() { done = true })
	pool.Close()

	assert.True(t, done)
}
