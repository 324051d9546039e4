// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingRunner struct {
	mu   sync.Mutex
	jobs []string
	done chan struct{}
}

func (r *countingRunner) Run(_ context.Context, jobID, _ string) error {
	r.mu.Lock()
	r.jobs = append(r.jobs, jobID)
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	return nil
}

func TestPoolRunsSubmittedJobs(t *testing.T) {
	runner := &countingRunner{done: make(chan struct{}, 3)}
	pool := NewPool(runner, 2, time.Minute)
	pool.Start(context.Background())
	defer pool.Stop()

	for _, id := range []string{"a", "b", "c"} {
		if err := pool.Submit(id, "https://example.com"); err != nil {
			t.Fatalf("Submit(%s): %v", id, err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-runner.done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for jobs to run")
		}
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.jobs) != 3 {
		t.Errorf("ran %d jobs, want 3", len(runner.jobs))
	}
}

type blockingRunner struct {
	release chan struct{}
	started atomic.Int32
}

func (r *blockingRunner) Run(ctx context.Context, _, _ string) error {
	r.started.Add(1)
	select {
	case <-r.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestSubmitQueueFull(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	pool := NewPool(runner, 1, time.Minute)
	pool.Start(context.Background())
	defer func() {
		close(runner.release)
		pool.Stop()
	}()

	// Saturate the single worker plus the whole queue.
	submitted := 0
	for i := 0; i < queueCapacity+2; i++ {
		if err := pool.Submit("job", "https://example.com"); err != nil {
			if !errors.Is(err, ErrQueueFull) {
				t.Fatalf("unexpected Submit error: %v", err)
			}
			break
		}
		submitted++
	}
	if submitted > queueCapacity+1 {
		t.Fatal("queue never reported full")
	}
}

func TestJobTimeout(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	pool := NewPool(runner, 1, 50*time.Millisecond)
	pool.Start(context.Background())

	if err := pool.Submit("stuck", "https://example.com"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Stop drains in-flight work; it only returns once the timed-out job
	// has been released by its context.
	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never released a timed-out job")
	}
}

func TestSubmitAfterStop(t *testing.T) {
	pool := NewPool(&countingRunner{}, 1, time.Minute)
	pool.Start(context.Background())
	pool.Stop()

	if err := pool.Submit("late", "https://example.com"); err == nil {
		t.Error("Submit after Stop should fail")
	}
}

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool(&countingRunner{}, 0, 0)
	if pool.workers != DefaultWorkers {
		t.Errorf("workers = %d, want %d", pool.workers, DefaultWorkers)
	}
	if pool.timeout != DefaultJobTimeout {
		t.Errorf("timeout = %v, want %v", pool.timeout, DefaultJobTimeout)
	}
}
