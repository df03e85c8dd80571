package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestSafe(t *testing.T) {
	if err := Safe(func() error { return nil }); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}

	sentinel := errors.New("boom")
	if err := Safe(func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel error, got %v", err)
	}

	err := Safe(func() error { panic("bad index") })
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *PanicError, got %v", err)
	}
	if pe.Value != "bad index" {
		t.Errorf("Expected panic value 'bad index', got %v", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("Expected stack trace to be captured")
	}
}

func TestWorkerPool(t *testing.T) {
	pool, err := NewWorkerPool(&WorkerPoolOptions{Size: 4})
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	defer pool.Shutdown()

	var sum atomic.Int64
	for i := 1; i <= 100; i++ {
		n := int64(i)
		if err := pool.Submit(func() error {
			sum.Add(n)
			return nil
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	if err := pool.Wait(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sum.Load() != 5050 {
		t.Errorf("Expected 5050, got %d", sum.Load())
	}

	stats := pool.Stats()
	if stats.Submitted != 100 || stats.Completed != 100 {
		t.Errorf("Expected 100 submitted/completed, got %d/%d", stats.Submitted, stats.Completed)
	}
	if stats.Capacity != 4 {
		t.Errorf("Expected capacity 4, got %d", stats.Capacity)
	}
}

func TestWorkerPool_CollectsFailures(t *testing.T) {
	pool, err := NewWorkerPool(nil)
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	defer pool.Shutdown()

	sentinel := errors.New("failed task")
	pool.Submit(func() error { return nil })
	pool.Submit(func() error { return sentinel })
	pool.Submit(func() error { panic("precondition") })

	err = pool.Wait()
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected joined error to contain sentinel, got %v", err)
	}
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Errorf("Expected joined error to contain a panic, got %v", err)
	}
	if pool.Stats().Failed != 2 {
		t.Errorf("Expected 2 failed tasks, got %d", pool.Stats().Failed)
	}
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	pool, err := NewWorkerPool(&WorkerPoolOptions{Size: 1})
	if err != nil {
		t.Fatalf("NewWorkerPool failed: %v", err)
	}
	pool.Shutdown()

	if err := pool.Submit(func() error { return nil }); err == nil {
		t.Error("Expected submit after shutdown to fail")
	}
}
