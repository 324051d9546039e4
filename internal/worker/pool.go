// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package worker runs brand guideline jobs on a small fixed pool. Each
// job gets its own timeout so a hung scrape or slow model cannot occupy
// a worker forever.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultWorkers matches the concurrency the service was sized for.
	DefaultWorkers = 2
	// DefaultJobTimeout is the wall-clock budget for one job.
	DefaultJobTimeout = 5 * time.Minute

	queueCapacity = 64
)

// ErrQueueFull is returned by Submit when the queue has no room; the
// HTTP layer maps it to 503.
var ErrQueueFull = errors.New("worker: queue full")

// Runner executes one job. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, jobID, url string) error
}

type task struct {
	jobID string
	url   string
}

// Pool dispatches queued jobs to a fixed number of workers.
type Pool struct {
	runner  Runner
	workers int
	timeout time.Duration

	queue chan task
	wg    sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewPool creates a Pool. Non-positive workers or timeout fall back to
// the defaults.
func NewPool(runner Runner, workers int, timeout time.Duration) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &Pool{
		runner:  runner,
		workers: workers,
		timeout: timeout,
		queue:   make(chan task, queueCapacity),
	}
}

// Start launches the workers. The base context is the parent of every
// per-job timeout context.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i)
	}
	slog.Info("worker pool started", "workers", p.workers, "job_timeout", p.timeout)
}

// Submit queues a job without blocking. Returns ErrQueueFull when the
// queue is at capacity and an error after Stop.
func (p *Pool) Submit(jobID, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return errors.New("worker: pool stopped")
	}
	select {
	case p.queue <- task{jobID: jobID, url: url}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	slog.Info("worker pool stopped")
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()

	for t := range p.queue {
		jobCtx, cancel := context.WithTimeout(ctx, p.timeout)
		slog.Info("job started", "worker", id, "job_id", t.jobID, "url", t.url)

		if err := p.runner.Run(jobCtx, t.jobID, t.url); err != nil {
			slog.Error("job error", "worker", id, "job_id", t.jobID, "error", err)
		}
		cancel()
	}
}
