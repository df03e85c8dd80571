// Package parallel provides a bounded goroutine pool for independent
// analysis tasks.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// PanicError is returned for a task that panicked
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Safe runs task and converts a panic into a *PanicError
func Safe(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task()
}

// WorkerPool runs tasks on an ants pool and collects their errors
type WorkerPool struct {
	pool       *ants.Pool
	wg         sync.WaitGroup
	isShutdown atomic.Bool

	mu   sync.Mutex
	errs []error

	// Metrics
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// WorkerPoolOptions configures the worker pool
type WorkerPoolOptions struct {
	Size int // <= 0 means one worker per CPU
}

// DefaultWorkerPoolOptions returns one worker per CPU
func DefaultWorkerPoolOptions() *WorkerPoolOptions {
	return &WorkerPoolOptions{Size: runtime.NumCPU()}
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(opts *WorkerPoolOptions) (*WorkerPool, error) {
	if opts == nil {
		opts = DefaultWorkerPoolOptions()
	}
	size := opts.Size
	if size <= 0 {
		size = runtime.NumCPU()
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &WorkerPool{
		pool: pool,
	}, nil
}

// Submit schedules task; its error, or its panic, is reported by Wait
func (wp *WorkerPool) Submit(task func() error) error {
	if wp.isShutdown.Load() {
		return ants.ErrPoolClosed
	}

	wp.submitted.Add(1)
	wp.wg.Add(1)

	err := wp.pool.Submit(func() {
		defer wp.wg.Done()
		defer wp.completed.Add(1)
		if err := Safe(task); err != nil {
			wp.failed.Add(1)
			wp.mu.Lock()
			wp.errs = append(wp.errs, err)
			wp.mu.Unlock()
		}
	})
	if err != nil {
		wp.wg.Done()
		wp.submitted.Add(-1)
		return err
	}
	return nil
}

// Wait blocks until all submitted tasks complete and returns their joined errors
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	return errors.Join(wp.errs...)
}

// Shutdown waits for running tasks and releases the pool
func (wp *WorkerPool) Shutdown() {
	wp.isShutdown.Store(true)
	wp.wg.Wait()
	wp.pool.Release()
}

// PoolStats is a snapshot of pool counters
type PoolStats struct {
	Running   int
	Capacity  int
	Submitted int64
	Completed int64
	Failed    int64
}

// Stats returns current worker pool statistics
func (wp *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Running:   wp.pool.Running(),
		Capacity:  wp.pool.Cap(),
		Submitted: wp.submitted.Load(),
		Completed: wp.completed.Load(),
		Failed:    wp.failed.Load(),
	}
}
