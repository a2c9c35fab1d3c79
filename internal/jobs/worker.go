package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"

	"schedule-console/internal/console"
	"schedule-console/internal/model"
)

// Runner executes the console workflows.
type Runner interface {
	SeedDemoData(ctx context.Context) error
	Refresh(ctx context.Context) error
	CompleteGenerate(ctx context.Context, run *console.GenerateRun) error
}

// Job is one workflow invocation queued by the panel.
type Job struct {
	Kind model.WorkflowKind
	// Generation is set for generate jobs; BeginGenerate has already run.
	Generation *console.GenerateRun
}

// WorkerPool runs workflow jobs on a fixed number of goroutines.
type WorkerPool struct {
	size   int
	jobs   chan Job
	runner Runner
	wg     sync.WaitGroup
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, runner Runner) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:   size,
		jobs:   make(chan Job, size), // Buffered channel
		runner: runner,
	}
}

// Start launches the worker goroutines. They exit when ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log.Printf("Worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Worker %d running %s job", id, job.Kind)
			if err := wp.run(ctx, job); err != nil {
				log.Printf("Worker %d: %s job failed: %v", id, job.Kind, err)
			}
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

func (wp *WorkerPool) run(ctx context.Context, job Job) error {
	switch job.Kind {
	case model.WorkflowSeed:
		return wp.runner.SeedDemoData(ctx)
	case model.WorkflowRefresh:
		return wp.runner.Refresh(ctx)
	case model.WorkflowGenerate:
		if job.Generation == nil {
			return fmt.Errorf("generate job without a started generation")
		}
		return wp.runner.CompleteGenerate(ctx, job.Generation)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

// Dispatch queues a job, blocking while the queue is full or until ctx is done.
func (wp *WorkerPool) Dispatch(ctx context.Context, job Job) error {
	select {
	case wp.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Job {
	return wp.jobs
}
