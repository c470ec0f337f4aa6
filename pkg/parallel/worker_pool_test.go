package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolBasicOperations(t *testing.T) {
	pool, err := NewWorkerPool(4)
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	var executed atomic.Bool
	if !pool.Submit(func() { executed.Store(true) }) {
		t.Error("Task submission failed")
	}

	if err := pool.Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if !executed.Load() {
		t.Error("Task was not executed")
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}
	pool.Close()
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Submit after Close should return false")
	}
}

func TestWorkerPoolWorkerCounts(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr error
	}{
		{"zero defaults to one", 0, nil},
		{"negative defaults to one", -3, nil},
		{"reasonable", 8, nil},
		{"overflow", MaxWorkers + 1, ErrTooManyWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewWorkerPool(tt.workers)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewWorkerPool(%d) error = %v, want %v", tt.workers, err, tt.wantErr)
			}
			if pool != nil {
				pool.Close()
			}
		})
	}
}

func TestWorkerPoolWithPanic(t *testing.T) {
	pool, err := NewWorkerPool(2)
	if err != nil {
		t.Fatalf("NewWorkerPool() error = %v", err)
	}

	var after atomic.Int64
	pool.Submit(func() { panic("boom") })
	for i := 0; i < 10; i++ {
		pool.Submit(func() { after.Add(1) })
	}

	err = pool.Wait()
	if !errors.Is(err, ErrTaskPanicked) {
		t.Errorf("Wait() error = %v, want ErrTaskPanicked", err)
	}
	if after.Load() != 10 {
		t.Errorf("workers stopped after panic: ran %d of 10 tasks", after.Load())
	}
}

func TestForEach(t *testing.T) {
	const n = 200
	seen := make([]int32, n)
	var mu sync.Mutex
	total := 0

	err := ForEach(8, n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
		mu.Lock()
		total += i
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d ran %d times", i, c)
		}
	}
	if total != n*(n-1)/2 {
		t.Errorf("total = %d, want %d", total, n*(n-1)/2)
	}

	if err := ForEach(4, 0, func(int) { t.Error("called for empty range") }); err != nil {
		t.Errorf("ForEach(0) error = %v", err)
	}
}
