package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

var (
	// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")

	// ErrTaskPanicked is returned by Err when a submitted task panicked.
	ErrTaskPanicked = errors.New("task panicked")
)

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// WorkerPool runs submitted tasks on a fixed set of goroutines.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu

	errMu    sync.Mutex
	firstErr error
}

// NewWorkerPool creates a new worker pool with specified number of workers.
// Returns an error if the worker count exceeds MaxWorkers.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}

	pool.start()
	return pool, nil
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes one task, recording a panic instead of crashing the worker.
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.errMu.Lock()
			if wp.firstErr == nil {
				wp.firstErr = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			}
			wp.errMu.Unlock()
		}
	}()
	task()
}

// Submit adds a task to the worker pool.
// Returns false if the pool is closed, true if task was submitted.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for queued ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete and returns the first
// recovered panic, if any.
func (wp *WorkerPool) Wait() error {
	wp.Close()
	return wp.Err()
}

// Err returns the first recovered task panic.
func (wp *WorkerPool) Err() error {
	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	return wp.firstErr
}

// ForEach calls fn(i) for every i in [0, n) across the given number of
// workers and waits for completion. Each index runs exactly once.
func ForEach(workers, n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	pool, err := NewWorkerPool(workers)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func() { fn(i) })
	}
	return pool.Wait()
}
